package crypto

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

const rawKey = "0123456789abcdef0123456789abcdef"

func TestSealOpenRoundTrip(t *testing.T) {
	svc, err := New(rawKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !svc.Configured() {
		t.Fatal("expected service to be configured")
	}
	plain := []byte(`[{"id":1,"name":"John Doe"}]`)
	sealed, err := svc.Seal(plain, "employees")
	if err != nil {
		t.Fatalf("seal failed: %v", err)
	}
	if bytes.Contains(sealed, []byte("John Doe")) {
		t.Fatal("expected ciphertext not to contain plaintext")
	}
	opened, err := svc.Open(sealed, "employees")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if !bytes.Equal(opened, plain) {
		t.Fatalf("expected %q, got %q", plain, opened)
	}
}

func TestOpenRejectsWrongLabel(t *testing.T) {
	svc, _ := New(rawKey)
	sealed, _ := svc.Seal([]byte("salary"), "payrollData")
	if _, err := svc.Open(sealed, "feedback"); err == nil {
		t.Fatal("expected a value sealed for another collection to fail")
	}
}

func TestKeyEncodings(t *testing.T) {
	for name, secret := range map[string]string{
		"hex":        strings.Repeat("ab", keySize),
		"base64":     "MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY=",
		"passphrase": "short passphrase",
	} {
		svc, err := New(secret)
		if err != nil || !svc.Configured() {
			t.Fatalf("%s: expected configured service, got %v", name, err)
		}
		other, _ := New(secret)
		sealed, _ := svc.Seal([]byte("payroll"), "k")
		if opened, err := other.Open(sealed, "k"); err != nil || string(opened) != "payroll" {
			t.Fatalf("%s: expected same secret to derive same key, got %q, %v", name, opened, err)
		}
	}
}

func TestUnconfiguredServicePassesThrough(t *testing.T) {
	svc, err := New("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.Configured() {
		t.Fatal("expected empty key to leave service unconfigured")
	}
	out, err := svc.Seal([]byte("plain"), "k")
	if err != nil || string(out) != "plain" {
		t.Fatalf("expected passthrough, got %q, %v", out, err)
	}
	var nilSvc *Service
	if nilSvc.Configured() {
		t.Fatal("expected nil service to be unconfigured")
	}
}

func TestOpenRejectsTamperedData(t *testing.T) {
	svc, _ := New(rawKey)
	sealed, _ := svc.Seal([]byte("feedback"), "k")
	sealed[len(sealed)-1] ^= 0xff
	if _, err := svc.Open(sealed, "k"); err == nil {
		t.Fatal("expected tampered ciphertext to fail")
	}
	if _, err := svc.Open([]byte{1, 2}, "k"); !errors.Is(err, ErrCiphertextTooShort) {
		t.Fatalf("expected ErrCiphertextTooShort, got %v", err)
	}
}

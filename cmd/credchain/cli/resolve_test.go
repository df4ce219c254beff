package cli

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/majorcontext/credchain"
)

func decodeOutput(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	return got
}

func TestWriteCredentialsKeyPair(t *testing.T) {
	expiry := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	err := writeCredentials(&buf, credchain.Credentials{
		AccessKeyID:     "AKIAEXAMPLE",
		SecretAccessKey: "secret",
		SessionToken:    "token",
		Expires:         expiry,
	})
	if err != nil {
		t.Fatalf("writeCredentials() error = %v", err)
	}

	got := decodeOutput(t, &buf)
	if got["Version"] != float64(1) {
		t.Errorf("Version = %v, want 1", got["Version"])
	}
	if got["AccessKeyId"] != "AKIAEXAMPLE" || got["SecretAccessKey"] != "secret" || got["SessionToken"] != "token" {
		t.Errorf("unexpected fields: %v", got)
	}
	if got["Expiration"] != "2026-08-30T12:00:00Z" {
		t.Errorf("Expiration = %v", got["Expiration"])
	}
}

func TestWriteCredentialsNoSessionToken(t *testing.T) {
	var buf bytes.Buffer
	err := writeCredentials(&buf, credchain.Credentials{
		AccessKeyID:     "AKIAEXAMPLE",
		SecretAccessKey: "secret",
	})
	if err != nil {
		t.Fatalf("writeCredentials() error = %v", err)
	}

	got := decodeOutput(t, &buf)
	if _, ok := got["SessionToken"]; ok {
		t.Errorf("SessionToken present for a plain key pair: %v", got)
	}
	if _, ok := got["Expiration"]; ok {
		t.Errorf("Expiration present for non-expiring credentials: %v", got)
	}
}

func TestWriteCredentialsToken(t *testing.T) {
	var buf bytes.Buffer
	err := writeCredentials(&buf, credchain.Credentials{Token: "bearer-tok"})
	if err != nil {
		t.Fatalf("writeCredentials() error = %v", err)
	}

	got := decodeOutput(t, &buf)
	if got["Token"] != "bearer-tok" {
		t.Errorf("Token = %v, want bearer-tok", got["Token"])
	}
	if _, ok := got["AccessKeyId"]; ok {
		t.Errorf("AccessKeyId present for a token credential: %v", got)
	}
}

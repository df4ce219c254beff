package keyring

import (
	"context"
	"testing"

	"github.com/zalando/go-keyring"

	"github.com/majorcontext/credchain"
)

func TestProvider_Name(t *testing.T) {
	if got := New().Name(); got != "keyring" {
		t.Errorf("Name() = %q, want %q", got, "keyring")
	}
}

func TestStoreRetrieveErase(t *testing.T) {
	keyring.MockInit()
	t.Setenv("CREDCHAIN_KEYRING_SERVICE", "credchain-test")
	t.Setenv("CREDCHAIN_PROFILE", "")

	creds := credchain.Credentials{
		AccessKeyID:     "AKIAKEYRING",
		SecretAccessKey: "krsecret",
		SessionToken:    "krtoken",
	}
	if err := Store("work", creds); err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	p := &Provider{Profile: "work"}
	got, err := p.Retrieve(context.Background())
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if got.AccessKeyID != creds.AccessKeyID || got.SecretAccessKey != creds.SecretAccessKey || got.SessionToken != creds.SessionToken {
		t.Errorf("Retrieve() = %+v, want %+v", got, creds)
	}
	if got.Source != Name {
		t.Errorf("Source = %q, want %q", got.Source, Name)
	}

	if err := Erase("work"); err != nil {
		t.Fatalf("Erase() error = %v", err)
	}
	if _, err := p.Retrieve(context.Background()); err == nil {
		t.Error("Retrieve() after Erase succeeded")
	}
}

func TestRetrieveMissingProfile(t *testing.T) {
	keyring.MockInit()
	t.Setenv("CREDCHAIN_KEYRING_SERVICE", "credchain-test")

	p := &Provider{Profile: "absent"}
	_, err := p.Retrieve(context.Background())
	if err == nil {
		t.Fatal("Retrieve() error = nil for absent profile")
	}
}

func TestEraseMissingProfile(t *testing.T) {
	keyring.MockInit()
	t.Setenv("CREDCHAIN_KEYRING_SERVICE", "credchain-test")

	if err := Erase("never-stored"); err != nil {
		t.Errorf("Erase() on absent profile error = %v, want nil", err)
	}
}

func TestRetrieveMalformedEntry(t *testing.T) {
	keyring.MockInit()
	t.Setenv("CREDCHAIN_KEYRING_SERVICE", "credchain-test")

	if err := keyring.Set("credchain-test", "default", "not json"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	t.Setenv("CREDCHAIN_PROFILE", "")

	if _, err := New().Retrieve(context.Background()); err == nil {
		t.Error("Retrieve() error = nil for malformed entry")
	}
}

package azure

import (
	"encoding/base64"
	"net/http"
	"strings"
	"testing"

	"github.com/neocodenexus/vendorx-backend/pkg/config"
)

func TestNewClientValidation(t *testing.T) {
	key := base64.StdEncoding.EncodeToString([]byte("account-key"))

	if _, err := NewClient(config.AzureBlobConfig{AccountKey: key, Container: "docs"}, nil); err == nil {
		t.Fatal("expected missing account name error")
	}
	if _, err := NewClient(config.AzureBlobConfig{AccountName: "acct", AccountKey: key}, nil); err == nil {
		t.Fatal("expected missing container error")
	}
	if _, err := NewClient(config.AzureBlobConfig{AccountName: "acct", AccountKey: "%%%", Container: "docs"}, nil); err == nil {
		t.Fatal("expected invalid key error")
	}

	client, err := NewClient(config.AzureBlobConfig{
		AccountName:    "acct",
		AccountKey:     key,
		Container:      "docs",
		EndpointSuffix: "core.windows.net",
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Container() != "docs" {
		t.Fatalf("unexpected container %q", client.Container())
	}
	if client.endpoint != "https://acct.blob.core.windows.net" {
		t.Fatalf("unexpected endpoint %q", client.endpoint)
	}
}

func TestBuildStringToSign(t *testing.T) {
	headers := http.Header{}
	headers.Set("x-ms-blob-type", "BlockBlob")
	headers.Set("x-ms-date", "Sun, 31 Aug 2025 12:00:00 GMT")
	headers.Set("x-ms-version", apiVersion)
	headers.Set("Content-Type", "application/pdf")

	got := buildStringToSign(http.MethodPut, headers, 1024, "acct", "docs", "20250831120000.000000_license.pdf")

	lines := strings.Split(got, "\n")
	if lines[0] != "PUT" {
		t.Fatalf("expected verb first, got %q", lines[0])
	}
	if lines[3] != "1024" {
		t.Fatalf("expected content length, got %q", lines[3])
	}
	if lines[5] != "application/pdf" {
		t.Fatalf("expected content type, got %q", lines[5])
	}
	if !strings.Contains(got, "x-ms-blob-type:BlockBlob\nx-ms-date:Sun, 31 Aug 2025 12:00:00 GMT\nx-ms-version:"+apiVersion) {
		t.Fatalf("canonicalized headers out of order:\n%s", got)
	}
	if lines[len(lines)-1] != "/acct/docs/20250831120000.000000_license.pdf" {
		t.Fatalf("unexpected canonicalized resource %q", lines[len(lines)-1])
	}
}

func TestBuildStringToSignEmptyBody(t *testing.T) {
	headers := http.Header{}
	headers.Set("x-ms-date", "Sun, 31 Aug 2025 12:00:00 GMT")

	got := buildStringToSign(http.MethodPut, headers, 0, "acct", "docs", "empty.txt")
	lines := strings.Split(got, "\n")
	if lines[3] != "" {
		t.Fatalf("expected empty content length for zero-byte body, got %q", lines[3])
	}
}

package s3_test

import (
	"testing"

	"hotel/infras/s3"

	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "invoices/INV-1.pdf", s3.ObjectKey("invoices", "INV-1.pdf"))
	assert.Equal(t, "invoices/INV-1.pdf", s3.ObjectKey("/invoices/", "INV-1.pdf"))
	assert.Equal(t, "INV-1.pdf", s3.ObjectKey("", "INV-1.pdf"))
}

func TestPublicURL(t *testing.T) {
	tests := []struct {
		domain string
		want   string
	}{
		{"https://files.example.com", "https://files.example.com/invoices/INV-1.pdf"},
		{"https://files.example.com/", "https://files.example.com/invoices/INV-1.pdf"},
		{"files.example.com", "https://files.example.com/invoices/INV-1.pdf"},
		{"", "invoices/INV-1.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			assert.Equal(t, tt.want, s3.PublicURL(tt.domain, "invoices/INV-1.pdf"))
		})
	}
}

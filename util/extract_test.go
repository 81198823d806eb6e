package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVendorProduct(t *testing.T) {
	vendor, product := VendorProduct("cpe:2.3:a:apache:http_server:2.4.57:*:*:*:*:*:*:*")
	assert.Equal(t, "Apache", vendor)
	assert.Equal(t, "Http Server", product)

	vendor, product = VendorProduct("cpe:2.3:o:microsoft:windows_10:-")
	assert.Equal(t, "Microsoft", vendor)
	assert.Equal(t, "Windows 10", product)
}

func TestVendorProductMalformed(t *testing.T) {
	for _, criteria := range []string{"", "cpe", "cpe:2.3:a", "cpe:2.3:a:vendor"} {
		vendor, product := VendorProduct(criteria)
		assert.Equal(t, UnknownVendor, vendor, "criteria %q", criteria)
		assert.Equal(t, UnknownVendor, product, "criteria %q", criteria)
	}
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Apache", TitleCase("apache"))
	assert.Equal(t, "Http Server", TitleCase("http SERVER"))
	assert.Equal(t, "", TitleCase(""))
	assert.Equal(t, "A B", TitleCase("  a   b  "))
}

func TestFirstCWE(t *testing.T) {
	assert.Equal(t, "CWE-79", FirstCWE([]string{"NVD-CWE-noinfo", "CWE-79", "CWE-89"}))
	assert.Equal(t, "", FirstCWE([]string{"NVD-CWE-Other"}))
	assert.Equal(t, "", FirstCWE(nil))
}

func TestNormalizeCVEID(t *testing.T) {
	assert.Equal(t, "CVE-2024-12345", NormalizeCVEID("2024-12345"))
	assert.Equal(t, "CVE-2024-12345", NormalizeCVEID("CVE-2024-12345"))
}

func TestTruncateRefs(t *testing.T) {
	refs := []string{"a", "b", "c"}
	assert.Equal(t, []string{"a", "b"}, TruncateRefs(refs, 2))
	assert.Equal(t, refs, TruncateRefs(refs, 3))
	assert.Equal(t, refs, TruncateRefs(refs, 10))
	assert.Nil(t, TruncateRefs(nil, 10))
}

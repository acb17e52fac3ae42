package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify_EAN13Decomposition(t *testing.T) {
	c := Classify(SymbologyEAN13, "4006381333931")

	require.Equal(t, ContentProduct, c.Type)
	require.NotNil(t, c.Product)
	require.Equal(t, "400", c.Product.Country)
	require.Equal(t, "63813", c.Product.Manufacturer)
	require.Equal(t, "3393", c.Product.Product)
	require.Equal(t, "1", c.Product.CheckDigit)
	require.Equal(t, 13, c.Length)
}

func TestClassify_EAN8Decomposition(t *testing.T) {
	c := Classify(SymbologyEAN8, "96385074")

	require.Equal(t, ContentProduct, c.Type)
	require.NotNil(t, c.Product)
	require.Equal(t, "96", c.Product.Country)
	require.Equal(t, "38507", c.Product.Product)
	require.Equal(t, "4", c.Product.CheckDigit)
	require.Empty(t, c.Product.Manufacturer)
}

func TestClassify_RetailUnexpectedLength(t *testing.T) {
	c := Classify(SymbologyUPCA, "12345")

	require.Equal(t, ContentText, c.Type)
	require.Nil(t, c.Product)
	require.Equal(t, 5, c.Length)
}

func TestClassify_RetailNonASCIINotDecomposed(t *testing.T) {
	// 13 символов, но не 13 байт: разложение по байтам не срабатывает,
	// а длина по-прежнему считается в символах.
	c := Classify(SymbologyEAN13, "४००६३८१३३३९३१")

	require.Equal(t, ContentText, c.Type)
	require.Nil(t, c.Product)
	require.Equal(t, 13, c.Length)
}

func TestClassify_WiFiConfig(t *testing.T) {
	c := Classify(SymbologyQR, "WIFI:S:MyNetwork;T:WPA;P:secret;;")

	require.Equal(t, ContentWiFi, c.Type)
	require.Equal(t, "MyNetwork", c.SSID)
	require.Equal(t, 33, c.Length)
}

func TestClassify_WiFiWithoutSSID(t *testing.T) {
	c := Classify(SymbologyQR, "WIFI:T:WPA;P:secret;;")

	require.Equal(t, ContentWiFi, c.Type)
	require.Empty(t, c.SSID)
}

func TestClassify_PrefixRules(t *testing.T) {
	cases := []struct {
		payload string
		want    ContentType
	}{
		{"https://example.com", ContentURL},
		{"http://example.com", ContentURL},
		{"mailto:user@example.com", ContentEmail},
		{"tel:+79990001122", ContentPhone},
		{"BEGIN:VCARD\nVERSION:3.0\nEND:VCARD", ContentVCard},
		{"просто текст", ContentText},
	}

	for _, tc := range cases {
		c := Classify(SymbologyQR, tc.payload)
		require.Equal(t, tc.want, c.Type, "payload %q", tc.payload)
	}
}

func TestClassify_LengthInRunes(t *testing.T) {
	c := Classify(SymbologyQR, "привет")
	require.Equal(t, 6, c.Length)
}

func TestClassify_Idempotent(t *testing.T) {
	first := Classify(SymbologyQR, "WIFI:S:Net;T:WPA;P:p;;")
	second := Classify(SymbologyQR, "WIFI:S:Net;T:WPA;P:p;;")
	require.Equal(t, first, second)

	first = Classify(SymbologyEAN13, "4006381333931")
	second = Classify(SymbologyEAN13, "4006381333931")
	require.Equal(t, first, second)
}

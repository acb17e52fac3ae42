package zxing

import (
	"context"
	"image"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/stretchr/testify/require"

	"github.com/Bimbetta/Scanner/internal/domain/entity"
)

func quietScanner() *Scanner {
	return NewScanner(log.New(io.Discard, "", 0))
}

func variantOf(img image.Image, ordinal int) entity.ImageVariant {
	return entity.ImageVariant{Image: img, Kind: entity.VariantOriginal, Ordinal: ordinal}
}

func TestScanner_FindsQRCode(t *testing.T) {
	const payload = "https://example.com/test"

	matrix, err := qrcode.NewQRCodeWriter().Encode(payload, gozxing.BarcodeFormat_QR_CODE, 200, 200, nil)
	require.NoError(t, err)

	detections, err := quietScanner().Scan(context.Background(), variantOf(matrix, 2))
	require.NoError(t, err)
	require.NotEmpty(t, detections)

	var found *entity.Detection
	for i := range detections {
		if detections[i].Payload == payload {
			found = &detections[i]
			break
		}
	}
	require.NotNil(t, found)
	require.Equal(t, entity.SymbologyQR, found.Symbology)
	require.Equal(t, 2, found.Variant)
	require.Nil(t, found.Quality)
	require.NotEmpty(t, found.Polygon)
	require.Greater(t, found.Rect.Width, 0)
	require.Greater(t, found.Rect.Height, 0)
}

func TestScanner_FindsEAN13(t *testing.T) {
	const payload = "4006381333931"

	matrix, err := oned.NewEAN13Writer().Encode(payload, gozxing.BarcodeFormat_EAN_13, 400, 120, nil)
	require.NoError(t, err)

	detections, err := quietScanner().Scan(context.Background(), variantOf(matrix, 0))
	require.NoError(t, err)
	require.NotEmpty(t, detections)

	var found *entity.Detection
	for i := range detections {
		if detections[i].Symbology == entity.SymbologyEAN13 {
			found = &detections[i]
			break
		}
	}
	require.NotNil(t, found)
	require.Equal(t, payload, found.Payload)

	// Сценарий товарного кода целиком: разложение на поля.
	c := entity.Classify(found.Symbology, found.Payload)
	require.NotNil(t, c.Product)
	require.Equal(t, "400", c.Product.Country)
	require.Equal(t, "63813", c.Product.Manufacturer)
	require.Equal(t, "3393", c.Product.Product)
	require.Equal(t, "1", c.Product.CheckDigit)
}

func TestScanner_FindsCode128(t *testing.T) {
	const payload = "LOT-2024-0042"

	matrix, err := oned.NewCode128Writer().Encode(payload, gozxing.BarcodeFormat_CODE_128, 400, 120, nil)
	require.NoError(t, err)

	detections, err := quietScanner().Scan(context.Background(), variantOf(matrix, 1))
	require.NoError(t, err)
	require.NotEmpty(t, detections)

	var found *entity.Detection
	for i := range detections {
		if detections[i].Symbology == entity.SymbologyCode128 {
			found = &detections[i]
			break
		}
	}
	require.NotNil(t, found)
	require.Equal(t, payload, found.Payload)
	require.Equal(t, 1, found.Variant)
}

func TestScanner_UniformImageYieldsNothing(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 200, 200))
	for i := range img.Pix {
		img.Pix[i] = 127
	}

	detections, err := quietScanner().Scan(context.Background(), variantOf(img, 0))
	require.NoError(t, err)
	require.Empty(t, detections)
}

func TestToDetection_MapsGeometryAndFormat(t *testing.T) {
	points := []gozxing.ResultPoint{
		gozxing.NewResultPoint(10, 20),
		gozxing.NewResultPoint(110, 20),
		gozxing.NewResultPoint(110, 80),
		gozxing.NewResultPoint(10, 80),
	}
	result := gozxing.NewResult("hello", []byte("hello"), points, gozxing.BarcodeFormat_QR_CODE)

	d := toDetection(result, 3)
	require.Equal(t, "hello", d.Payload)
	require.Equal(t, entity.SymbologyQR, d.Symbology)
	require.Equal(t, 3, d.Variant)
	require.Len(t, d.Polygon, 4)
	require.Equal(t, entity.Rect{X: 10, Y: 20, Width: 101, Height: 61}, d.Rect)
}

func TestToDetection_UnknownFormatPreserved(t *testing.T) {
	result := gozxing.NewResult("payload", nil, nil, gozxing.BarcodeFormat_MAXICODE)

	d := toDetection(result, 0)
	require.True(t, strings.HasPrefix(string(d.Symbology), "unknown type ("), "%s", d.Symbology)
	require.Equal(t, entity.Rect{}, d.Rect)
	require.Empty(t, d.Polygon)
}

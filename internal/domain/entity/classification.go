package entity

import (
	"strings"
	"unicode/utf8"
)

// ContentType — класс содержимого декодированного кода.
type ContentType string

const (
	ContentURL     ContentType = "url"
	ContentEmail   ContentType = "email"
	ContentPhone   ContentType = "phone"
	ContentWiFi    ContentType = "wifi"
	ContentVCard   ContentType = "vcard"
	ContentProduct ContentType = "product"
	ContentText    ContentType = "text"
)

// ProductCode — структурное разложение товарного кода.
// Поля описательные: контрольная цифра не проверяется по алгоритму.
type ProductCode struct {
	Country      string
	Manufacturer string
	Product      string
	CheckDigit   string
}

// Classification — результат анализа содержимого кода.
// Никогда не изменяет саму детекцию.
type Classification struct {
	Type    ContentType
	Length  int          // длина payload в символах
	SSID    string       // только для WiFi-конфигураций
	Product *ProductCode // только для товарных символик
}

// Classify классифицирует payload по символике и тексту.
// Чистая функция: без ввода-вывода, не ошибается — нераспознанные
// формы попадают в ContentText.
func Classify(sym Symbology, payload string) Classification {
	c := Classification{Type: ContentText, Length: utf8.RuneCountInString(payload)}

	if sym.IsRetail() {
		// Длина в байтах: розничный payload — строка ASCII-цифр, байты
		// совпадают с символами. Не-ASCII строка сюда не разложится.
		switch len(payload) {
		case 13:
			c.Type = ContentProduct
			c.Product = &ProductCode{
				Country:      payload[:3],
				Manufacturer: payload[3:8],
				Product:      payload[8:12],
				CheckDigit:   payload[12:],
			}
		case 8:
			c.Type = ContentProduct
			c.Product = &ProductCode{
				Country:    payload[:2],
				Product:    payload[2:7],
				CheckDigit: payload[7:],
			}
		}
		return c
	}

	switch {
	case strings.HasPrefix(payload, "http"):
		c.Type = ContentURL
	case strings.HasPrefix(payload, "mailto:"):
		c.Type = ContentEmail
	case strings.HasPrefix(payload, "tel:"):
		c.Type = ContentPhone
	case strings.HasPrefix(payload, "WIFI:"):
		c.Type = ContentWiFi
		c.SSID = wifiSSID(payload)
	case strings.HasPrefix(payload, "BEGIN:VCARD"):
		c.Type = ContentVCard
	}
	return c
}

// wifiSSID вытаскивает SSID: подстрока между первым "S:" и следующим ";".
func wifiSSID(payload string) string {
	_, rest, found := strings.Cut(payload, "S:")
	if !found {
		return ""
	}
	ssid, _, _ := strings.Cut(rest, ";")
	return ssid
}

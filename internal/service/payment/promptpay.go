// Package payment строит платёжный QR для PromptPay. Генерация кода не имеет
// побочных эффектов: payload можно пересоздавать и выбрасывать свободно,
// запись продажи происходит отдельно, после подтверждения кассиром.
package payment

import (
	"fmt"
	"strings"
)

// Теги EMVCo merchant-presented QR, используемые PromptPay.
const (
	idPayloadFormat       = "00"
	idPointOfInitiation   = "01"
	idMerchantAccountInfo = "29"
	idCurrency            = "53"
	idAmount              = "54"
	idCountryCode         = "58"
	idCRC                 = "63"

	payloadFormatEMV = "01"
	// Точка инициации: 11 — многоразовый код, 12 — код под конкретную сумму.
	initiationStatic  = "11"
	initiationDynamic = "12"

	promptPayAID = "A000000677010111"
	currencyTHB  = "764"
	countryTH    = "TH"

	subIDAID        = "00"
	subIDPhone      = "01"
	subIDNationalID = "02"
)

// BuildPayload кодирует идентификатор получателя PromptPay и сумму в
// EMVCo-payload, пригодный для QR. amountMinor в сатангах; ноль даёт
// многоразовый код без суммы.
func BuildPayload(merchantID string, amountMinor int64) (string, error) {
	target, subID, err := normalizeTarget(merchantID)
	if err != nil {
		return "", err
	}
	if amountMinor < 0 {
		return "", fmt.Errorf("amount must be non-negative, got %d", amountMinor)
	}

	initiation := initiationStatic
	if amountMinor > 0 {
		initiation = initiationDynamic
	}

	var b strings.Builder
	b.WriteString(tlv(idPayloadFormat, payloadFormatEMV))
	b.WriteString(tlv(idPointOfInitiation, initiation))
	b.WriteString(tlv(idMerchantAccountInfo, tlv(subIDAID, promptPayAID)+tlv(subID, target)))
	b.WriteString(tlv(idCurrency, currencyTHB))
	if amountMinor > 0 {
		b.WriteString(tlv(idAmount, fmt.Sprintf("%d.%02d", amountMinor/100, amountMinor%100)))
	}
	b.WriteString(tlv(idCountryCode, countryTH))

	// CRC считается по всему payload, включая тег и длину самого CRC.
	payload := b.String() + idCRC + "04"
	return payload + fmt.Sprintf("%04X", crc16(payload)), nil
}

// normalizeTarget приводит идентификатор получателя к формату PromptPay:
// 13 цифр — национальный ID, телефон — 0066 плюс номер без ведущего нуля.
func normalizeTarget(merchantID string) (target, subID string, err error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, merchantID)

	switch {
	case len(digits) == 13:
		return digits, subIDNationalID, nil
	case len(digits) >= 9 && len(digits) <= 10:
		trimmed := strings.TrimPrefix(digits, "0")
		return fmt.Sprintf("%013s", "66"+trimmed), subIDPhone, nil
	default:
		return "", "", fmt.Errorf("unsupported promptpay id %q", merchantID)
	}
}

func tlv(id, value string) string {
	return fmt.Sprintf("%s%02d%s", id, len(value), value)
}

// crc16 — CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF), как того требует EMVCo.
func crc16(s string) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range []byte(s) {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

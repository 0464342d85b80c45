package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Codes are generated explicitly before insert, never by a persistence hook.
// Format: PREFIX-YYYYMMDD-XXXX, unique across merchants.

func NewOrderCode() string {
	return newCode("ORD")
}

func NewSKU() string {
	return newCode("PRD")
}

func NewCustomerCode() string {
	return newCode("CUS")
}

func newCode(prefix string) string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return fmt.Sprintf("%s-%s-%s", prefix, time.Now().Format("20060102"), id[:4])
}

package ledger

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"

	luhn "github.com/EClaesson/go-luhn"
)

const codePrefix = "ECO-"

var codeRegex = regexp.MustCompile(`^ECO-[0-9]{4,}$`)

// nextOfferID draws random digit codes until one passes the Luhn check and
// is unused. The point terminal validates scanned codes the same way, so a
// mistyped digit is caught before any lookup. Callers must hold the lock.
func (s *Service) nextOfferID() string {
	width := 4
	for attempts := 1; ; attempts++ {
		// The 4-digit pool only holds a thousand valid codes; widen once
		// it looks exhausted.
		if attempts%5000 == 0 {
			width++
		}
		digits := fmt.Sprintf("%0*d", width, rand.IntN(pow10(width)))
		if ok, err := luhn.IsValid(digits); err != nil || !ok {
			continue
		}
		id := codePrefix + digits
		if _, taken := s.byID[id]; !taken {
			return id
		}
	}
}

// NormalizeOfferID canonicalizes terminal input: trims, upper-cases, accepts
// the digits with or without the ECO- prefix, and rejects codes that fail
// the Luhn check before any search happens.
func NormalizeOfferID(raw string) (string, error) {
	id := strings.ToUpper(strings.TrimSpace(raw))
	if id == "" {
		return "", fmt.Errorf("%w: offer id is empty", ErrValidation)
	}
	if !strings.HasPrefix(id, codePrefix) {
		id = codePrefix + id
	}
	if !codeRegex.MatchString(id) {
		return "", fmt.Errorf("%w: malformed offer id %q", ErrValidation, raw)
	}
	digits := strings.TrimPrefix(id, codePrefix)
	if ok, err := luhn.IsValid(digits); err != nil || !ok {
		return "", fmt.Errorf("%w: offer id %q failed the check digit", ErrValidation, raw)
	}
	return id, nil
}

func pow10(n int) int {
	p := 1
	for i := 0; i < n; i++ {
		p *= 10
	}
	return p
}

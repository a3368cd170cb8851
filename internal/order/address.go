package order

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	reDigit  = regexp.MustCompile(`\d+`)
	reStreet = regexp.MustCompile(`\b(rua|avenida|av|alameda|travessa|rodovia|estrada|praça)\b`)
)

// ValidateAddress applies the delivery-address heuristics in order;
// the first failing rule produces the reply. The rule order is part of
// the conversational contract and must not be rearranged.
func ValidateAddress(address string) (message string, valid bool) {
	// length in characters, not bytes; accents are routine here
	if utf8.RuneCountInString(strings.TrimSpace(address)) < 10 {
		return "Endereço muito curto. Por favor, envie o endereço completo com rua, número e bairro.", false
	}

	hasNumber := reDigit.MatchString(address)
	hasStreet := reStreet.MatchString(strings.ToLower(address))
	wordCount := len(strings.Fields(address))

	if !hasNumber {
		return "Por favor, inclua o número no endereço.\n\nExemplo: Rua Carlos Marighella, 102, Bairro Novo", false
	}

	if !hasStreet && wordCount < 4 {
		return "Por favor, envie um endereço mais completo.\n\nExemplo: Rua Carlos Marighella, 102, Bairro Novo, próximo ao mercado", false
	}

	// only reachable with a street keyword present and fewer than 3 words
	if wordCount < 3 {
		return "Endereço incompleto. Por favor, envie rua, número e bairro.\n\nExemplo: Rua Carlos Marighella, 102, Bairro Novo", false
	}

	return "", true
}

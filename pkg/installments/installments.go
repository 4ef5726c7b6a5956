package installments

import (
	"regexp"
	"strconv"

	"github.com/yurifrl/ledgeru/pkg/models"
)

// Matchers are tried in order; the first pattern that both matches and
// survives range validation wins. Keeping recognition and validation separate
// lets a bogus match ("installment 15 of 12") fall through to later patterns
// instead of poisoning the result.
var matchers = []*regexp.Regexp{
	// English: "installment 3 of 12"
	regexp.MustCompile(`(?i)\binstallment\s+(\d+)\s+of\s+(\d+)`),
	// English, alternate word order: "3 of 12 installments"
	regexp.MustCompile(`(?i)\b(\d+)\s+of\s+(\d+)\s+installments?\b`),
	// Portuguese: "parcela 3 de 12" or "parcela 3/12"
	regexp.MustCompile(`(?i)\bparcela\s+(\d+)\s*(?:de\s+|/)(\d+)`),
	// Hebrew: "תשלום 3 מתוך 12"
	regexp.MustCompile(`תשלום\s+(\d+)\s+מתוך\s+(\d+)`),
}

// Match extracts installment info from a free-text description. It returns
// nil when no pattern matches or every match fails validation.
func Match(description string) *models.InstallmentInfo {
	for _, re := range matchers {
		m := re.FindStringSubmatch(description)
		if m == nil {
			continue
		}
		number, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		total, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		if number <= 0 || total <= 0 || number > total {
			continue
		}
		return &models.InstallmentInfo{Number: number, Total: total}
	}
	return nil
}

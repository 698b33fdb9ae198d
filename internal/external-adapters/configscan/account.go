package configscan

import (
	"os"
	"regexp"
	"strings"

	"augclean/internal/domain/entities"
	"augclean/internal/domain/services"
)

var usernameRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)"username"\s*:\s*"([^"]+)"`),
	regexp.MustCompile(`(?i)"user"\s*:\s*"([^"]+)"`),
	regexp.MustCompile(`(?i)"login"\s*:\s*"([^"]+)"`),
	regexp.MustCompile(`(?i)"account"\s*:\s*"([^"]+)"`),
	regexp.MustCompile(`(?i)username\s*[=:]\s*(\S+)`),
	regexp.MustCompile(`(?i)user\s*[=:]\s*(\S+)`),
	regexp.MustCompile(`(?i)login\s*[=:]\s*(\S+)`),
}

// ExtractAccountData pulls email addresses and username-looking values
// out of a single file without caring about its format. Short and
// all-numeric captures are discarded as noise.
func (s *Scanner) ExtractAccountData(path string) (entities.AccountFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return entities.AccountFile{}, err
	}
	content := string(data)

	af := entities.AccountFile{Path: path}
	seen := map[string]bool{}
	for _, email := range services.EmailRegex.FindAllString(content, -1) {
		if !seen[email] {
			seen[email] = true
			af.Emails = append(af.Emails, email)
		}
	}

	seenUser := map[string]bool{}
	for _, re := range usernameRes {
		for _, m := range re.FindAllStringSubmatch(content, -1) {
			name := strings.Trim(m[1], `"',`)
			if len(name) <= 2 || allDigits(name) || seenUser[name] {
				continue
			}
			seenUser[name] = true
			af.Usernames = append(af.Usernames, name)
		}
	}
	return af, nil
}

// CleanAccountFile redacts account references in place. With removeAll
// set, every discovered email and every username longer than four
// characters is replaced. With a target email, only that address and
// its local part are touched, leaving other accounts in the file alone.
func (s *Scanner) CleanAccountFile(path string, data entities.AccountFile, targetEmail string, removeAll bool) (bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	content := string(raw)
	original := content

	if removeAll {
		for _, email := range data.Emails {
			content = services.RedactWholeWord(content, email)
		}
		for _, name := range data.Usernames {
			if len(name) > 4 {
				content = services.RedactWholeWord(content, name)
			}
		}
	} else if targetEmail != "" {
		content = services.RedactLiteral(content, targetEmail)
		if local := services.LocalPart(targetEmail); len(local) > 3 {
			content = services.RedactWholeWord(content, local)
		}
	}

	if content == original {
		return false, nil
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, err
	}
	return true, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

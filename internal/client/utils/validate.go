package utils

import "regexp"

var (
	phoneRe  = regexp.MustCompile(`^1[3-9]\d{9}$`)
	emailRe  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	idCardRe = regexp.MustCompile(`(^\d{15}$)|(^\d{18}$)|(^\d{17}(\d|X|x)$)`)
)

// ValidatePhone reports whether s is a well-formed mainland mobile number.
func ValidatePhone(s string) bool {
	return phoneRe.MatchString(s)
}

func ValidateEmail(s string) bool {
	return emailRe.MatchString(s)
}

// ValidateIDCard reports whether s is a 15- or 18-digit national ID number.
func ValidateIDCard(s string) bool {
	return idCardRe.MatchString(s)
}

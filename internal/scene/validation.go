package scene

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// maxTopicLength is the maximum allowed length of a command topic in characters.
const maxTopicLength = 128

// ValidateTopic checks that a topic is usable as a device command destination.
//
// Wildcard characters ('+', '#'), '$', whitespace, and ASCII control
// characters through 0x19 are rejected because they are reserved in the
// broker's topic addressing scheme. Topics must be non-empty and at most
// maxTopicLength characters.
func ValidateTopic(topic string) error {
	if topic == "" {
		return fmt.Errorf("%w: empty topic", ErrInvalidTopic)
	}

	if utf8.RuneCountInString(topic) > maxTopicLength {
		return fmt.Errorf("%w: length exceeds %d characters", ErrInvalidTopic, maxTopicLength)
	}

	for _, r := range topic {
		switch {
		case r == '+' || r == '#' || r == '$':
			return fmt.Errorf("%w: contains reserved character %q", ErrInvalidTopic, r)
		case r <= 0x19 || unicode.IsSpace(r):
			return fmt.Errorf("%w: contains whitespace or control character", ErrInvalidTopic)
		}
	}

	return nil
}

package businessflow

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/models"
	"github.com/manjumjsonu/Government-Authority-Website--team-Sahyadrii/utils"
)

// MessageComposer builds the SMS body sent back to a farmer
type MessageComposer interface {
	Compose(subscriber *models.Subscriber, fragments []string) string
}

// MessageComposerImpl implements MessageComposer
type MessageComposerImpl struct {
	helpline  string
	maxLength int
}

// NewMessageComposer creates a composer. Empty helpline and non-positive length use defaults.
func NewMessageComposer(helpline string, maxLength int) MessageComposer {
	if helpline == "" {
		helpline = utils.DefaultHelpline
	}
	if maxLength <= 0 {
		maxLength = utils.MaxSMSLength
	}
	return &MessageComposerImpl{
		helpline:  helpline,
		maxLength: maxLength,
	}
}

// Compose never returns more than maxLength characters
func (m *MessageComposerImpl) Compose(subscriber *models.Subscriber, fragments []string) string {
	var msg string
	if len(fragments) == 0 {
		msg = m.fallback(subscriber.DisplayName())
	} else {
		prices := strings.Join(fragments, ", ")
		msg = fmt.Sprintf("%s. Token at Hobli office. Helpline: %s", prices, m.helpline)
		if utf8.RuneCountInString(msg) > m.maxLength {
			msg = fmt.Sprintf("%s... Helpline: %s", utils.TruncateRunes(prices, utils.TruncatedPricesLength), m.helpline)
		}
	}

	return utils.TruncateRunes(msg, m.maxLength)
}

// fallback greets the farmer by name, shortening the name so the helpline still fits
func (m *MessageComposerImpl) fallback(name string) string {
	const greeting = "Hello "
	suffix := ", no crop rates available. Contact Hobli office: " + m.helpline

	room := m.maxLength - utf8.RuneCountInString(greeting) - utf8.RuneCountInString(suffix)
	return greeting + utils.TruncateRunes(name, room) + suffix
}

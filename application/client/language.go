package client

import (
	"context"
	"errors"

	pwa "github.com/remix-pwa/pwa-client"
)

// GetLanguage returns the preferred language tag.
func (c *Client) GetLanguage(ctx context.Context) (string, error) {
	w, err := c.window(ctx, OpGetLanguage, msgServerSideCall)
	if err != nil {
		return "", err
	}

	lang, ok := w.Navigator().Language()
	if !ok {
		c.logger.ErrorContext(ctx, MsgLanguageUnavailable)
		return "", &pwa.RejectedError{
			Operation: OpGetLanguage,
			Reason:    MsgLanguageUnavailable,
			Err:       errors.New(MsgLanguageUnavailable),
		}
	}

	c.logger.InfoContext(ctx, "Language", "language", lang)
	return lang, nil
}

// GetLanguages returns the language preferences in host order. Duplicates
// are kept.
func (c *Client) GetLanguages(ctx context.Context) ([]string, error) {
	w, err := c.window(ctx, OpGetLanguages, msgNoWindowObject)
	if err != nil {
		return nil, err
	}

	langs := w.Navigator().Languages()
	if langs == nil {
		langs = []string{}
	}
	c.logger.InfoContext(ctx, "Languages", "languages", langs)
	return langs, nil
}

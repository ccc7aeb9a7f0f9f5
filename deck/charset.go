package deck

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/amp-labs/hero-slider/logger"
	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/htmlindex"
)

// fallbackCharset is assumed when detection gives no usable answer.
const fallbackCharset = "windows-1252"

// toUTF8 returns data unchanged if it is already UTF-8. Otherwise the
// charset is detected and the bytes transcoded.
func toUTF8(ctx context.Context, data []byte) ([]byte, error) {
	if utf8.Valid(data) {
		return data, nil
	}

	charset := fallbackCharset

	if res, err := chardet.NewTextDetector().DetectBest(data); err == nil && res.Charset != "" {
		charset = res.Charset
	}

	enc, err := htmlindex.Get(charset)
	if err != nil {
		logger.Get(ctx).Debug("unknown detected charset, using fallback", "charset", charset, "fallback", fallbackCharset)

		charset = fallbackCharset

		enc, err = htmlindex.Get(charset)
		if err != nil {
			return nil, fmt.Errorf("loading charset %s: %w", charset, err)
		}
	}

	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("transcoding deck from %s: %w", charset, err)
	}

	logger.Get(ctx).Debug("transcoded deck to UTF-8", "charset", charset)

	return out, nil
}

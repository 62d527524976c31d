package gateway

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/paladino/propiedades-web/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Unspecified is shown for name-like fields the record did not carry.
const Unspecified = "No especificado"

// PriceOnRequest replaces prices that are missing or hidden by the owner.
const PriceOnRequest = "Consultar precio"

var (
	bareURLPattern = regexp.MustCompile(`https?://[^\s"']+`)
	relPattern     = regexp.MustCompile(`rel=\d+`)

	priceLocale = language.MustParse("es-AR")

	descriptionPolicy = newDescriptionPolicy()
)

func newDescriptionPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"p", "br", "strong", "em", "u", "b", "i",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li", "a", "img", "div", "span", "blockquote", "hr",
	)
	p.AllowAttrs("href", "src", "alt", "title", "class", "style", "target", "rel", "width", "height").Globally()
	p.AllowStandardURLs()
	return p
}

// ResolveImageURL makes an image reference absolute. Values already starting
// with "http" pass through, anything else is prefixed with origin. Empty
// input yields the placeholder.
func ResolveImageURL(origin, placeholder, raw string) string {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return placeholder
	case raw == placeholder, strings.HasPrefix(raw, "http"):
		return raw
	case strings.HasPrefix(raw, "/"):
		return strings.TrimRight(origin, "/") + raw
	default:
		return strings.TrimRight(origin, "/") + "/" + raw
	}
}

// ResolveName reads a name-like field that may be a bare string or an object
// with a name property. Anything else yields Unspecified.
func ResolveName(raw json.RawMessage) string {
	var n models.NameField
	_ = n.UnmarshalJSON(raw)
	return nameOr(n, Unspecified)
}

func nameOr(n models.NameField, def string) string {
	if s := n.String(); s != "" {
		return s
	}
	return def
}

// ResolveCurrencyCode maps a free-text currency name to an ISO 4217 code.
func ResolveCurrencyCode(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	switch {
	case normalized == "":
		return "USD"
	case strings.Contains(normalized, "peso"):
		return "ARS"
	case strings.Contains(normalized, "dolar"),
		strings.Contains(normalized, "dólar"),
		strings.Contains(normalized, "dollar"),
		strings.Contains(normalized, "usd"):
		return "USD"
	case strings.Contains(normalized, "ars"):
		return "ARS"
	case len(normalized) == 3:
		return strings.ToUpper(normalized)
	default:
		return "USD"
	}
}

// FormatPrice renders an amount the way the site shows it, for example
// "US$ 150.000". Missing, zero or hidden prices read PriceOnRequest.
func FormatPrice(amount decimal.NullDecimal, currencyName string, visible bool) string {
	if !visible || !amount.Valid || amount.Decimal.IsZero() {
		return PriceOnRequest
	}

	code := ResolveCurrencyCode(currencyName)
	p := message.NewPrinter(priceLocale)
	number := p.Sprintf("%d", amount.Decimal.Round(0).IntPart())

	if _, err := currency.ParseISO(code); err != nil {
		return fmt.Sprintf("$%s %s", number, code)
	}
	switch code {
	case "ARS":
		return "$ " + number
	case "USD":
		return "US$ " + number
	default:
		return code + " " + number
	}
}

// ExtractYouTubeEmbedURL pulls the player URL out of an embed snippet and
// forces rel=0. It reports false when the snippet holds no URL.
func ExtractYouTubeEmbedURL(markup string) (string, bool) {
	markup = strings.TrimSpace(markup)
	if markup == "" {
		return "", false
	}

	var videoURL string
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup)); err == nil {
		// An iframe wins over any other element carrying a src.
		for _, sel := range []string{"iframe[src]", "[src]"} {
			if src, ok := doc.Find(sel).First().Attr("src"); ok && strings.TrimSpace(src) != "" {
				videoURL = strings.TrimSpace(src)
				break
			}
		}
	}
	if videoURL == "" {
		videoURL = bareURLPattern.FindString(markup)
	}
	if videoURL == "" {
		return "", false
	}

	u, err := url.Parse(videoURL)
	if err == nil && u.Scheme != "" && u.Host != "" {
		q := u.Query()
		q.Set("rel", "0")
		u.RawQuery = q.Encode()
		return u.String(), true
	}

	// Not a parseable absolute URL: patch the query string by hand.
	switch {
	case !strings.Contains(videoURL, "?"):
		return videoURL + "?rel=0", true
	case strings.Contains(videoURL, "rel="):
		return relPattern.ReplaceAllString(videoURL, "rel=0"), true
	default:
		return videoURL + "&rel=0", true
	}
}

// SanitizeDescription turns a free-text description into safe HTML. Line
// breaks become <br> before the allow-list runs.
func SanitizeDescription(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	return descriptionPolicy.Sanitize(strings.ReplaceAll(raw, "\n", "<br>"))
}

// FeatureLabel turns a feature key such as "agua_corriente" into
// "Agua Corriente".
func FeatureLabel(key string) string {
	return cases.Title(language.Spanish).String(strings.ReplaceAll(key, "_", " "))
}

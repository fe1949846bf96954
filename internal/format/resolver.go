package format

import "github.com/chaisql/docbridge/internal/errs"

// Strategy is the decoding procedure chosen for a document.
type Strategy uint8

const (
	StrategyDefault Strategy = iota + 1
	StrategyJSON
	StrategyXML
	StrategyDelimited
	StrategyBinary
	StrategyText
)

func (s Strategy) String() string {
	switch s {
	case StrategyDefault:
		return "default"
	case StrategyJSON:
		return "json"
	case StrategyXML:
		return "xml"
	case StrategyDelimited:
		return "delimited"
	case StrategyBinary:
		return "binary"
	case StrategyText:
		return "text"
	}

	return "unknown"
}

// Resolve picks the strategy reading a document of the given kind with the
// configured format. Rules are evaluated in order and the first match wins:
//
//	JSON   + AUTO|JSON      -> json
//	XML    + AUTO|XML       -> xml
//	BINARY + AUTO|BLOB      -> binary
//	TEXT   + AUTO|DELIMITED -> delimited
//	any    + AUTO           -> binary
//	TEXT   + TEXT           -> text
//
// Any other combination is a FormatMismatchError.
func Resolve(kind ContentKind, configured Format) (Strategy, error) {
	auto := configured == Auto

	switch {
	case kind == KindJSON && (auto || configured == JSON):
		return StrategyJSON, nil
	case kind == KindXML && (auto || configured == XML):
		return StrategyXML, nil
	case kind == KindBinary && (auto || configured == Blob):
		return StrategyBinary, nil
	case kind == KindText && (auto || configured == Delimited):
		return StrategyDelimited, nil
	case auto:
		return StrategyBinary, nil
	case kind == KindText && configured == Text:
		return StrategyText, nil
	}

	return 0, errs.NewFormatMismatchError(configured.String(), kind.String())
}

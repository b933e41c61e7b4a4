package main

import "strings"

type CapturePriority int

const (
	// CaptureAny keeps every legal capture.
	CaptureAny CapturePriority = iota
	// CaptureMaximum keeps only captures whose full chain reaches the
	// longest chain available anywhere on the board.
	CaptureMaximum
	// CaptureKingFirst keeps only king captures whenever a king can capture.
	CaptureKingFirst
)

func (p CapturePriority) String() string {
	switch p {
	case CaptureMaximum:
		return "maximum"
	case CaptureKingFirst:
		return "king_first"
	default:
		return "any"
	}
}

// Variant is a declarative rule set. The engine never switches on variant
// names; everything it needs is a parameter here.
type Variant struct {
	Name                string          `json:"name"`
	BoardSize           int             `json:"board_size"`
	KingsFly            bool            `json:"kings_fly"`
	MenCaptureBackwards bool            `json:"men_capture_backwards"`
	MandatoryCapture    bool            `json:"mandatory_capture"`
	CapturePriority     CapturePriority `json:"capture_priority"`
	// PromotionEndsChain terminates a capture chain the moment a man
	// promotes. Russian draughts is the known exception: the new king keeps
	// capturing within the same turn.
	PromotionEndsChain bool `json:"promotion_ends_chain"`
}

// PieceRows is how many rows of men each side starts with.
func (v Variant) PieceRows() int {
	return v.BoardSize/2 - 1
}

var allVariants = []Variant{
	{Name: "American", BoardSize: 8, KingsFly: false, MenCaptureBackwards: false, MandatoryCapture: true, CapturePriority: CaptureAny, PromotionEndsChain: true},
	{Name: "International", BoardSize: 10, KingsFly: true, MenCaptureBackwards: true, MandatoryCapture: true, CapturePriority: CaptureMaximum, PromotionEndsChain: true},
	{Name: "Brazilian", BoardSize: 8, KingsFly: true, MenCaptureBackwards: true, MandatoryCapture: true, CapturePriority: CaptureMaximum, PromotionEndsChain: true},
	{Name: "Russian", BoardSize: 8, KingsFly: true, MenCaptureBackwards: true, MandatoryCapture: true, CapturePriority: CaptureAny, PromotionEndsChain: false},
	{Name: "Italian", BoardSize: 8, KingsFly: false, MenCaptureBackwards: false, MandatoryCapture: true, CapturePriority: CaptureKingFirst, PromotionEndsChain: true},
	{Name: "Spanish", BoardSize: 8, KingsFly: true, MenCaptureBackwards: false, MandatoryCapture: true, CapturePriority: CaptureMaximum, PromotionEndsChain: true},
	{Name: "Portuguese", BoardSize: 8, KingsFly: true, MenCaptureBackwards: false, MandatoryCapture: true, CapturePriority: CaptureMaximum, PromotionEndsChain: true},
	{Name: "Czech", BoardSize: 8, KingsFly: true, MenCaptureBackwards: false, MandatoryCapture: true, CapturePriority: CaptureKingFirst, PromotionEndsChain: true},
	{Name: "Thai", BoardSize: 8, KingsFly: true, MenCaptureBackwards: false, MandatoryCapture: true, CapturePriority: CaptureAny, PromotionEndsChain: true},
	{Name: "Pool", BoardSize: 8, KingsFly: true, MenCaptureBackwards: true, MandatoryCapture: true, CapturePriority: CaptureAny, PromotionEndsChain: true},
	{Name: "Canadian", BoardSize: 12, KingsFly: true, MenCaptureBackwards: true, MandatoryCapture: true, CapturePriority: CaptureMaximum, PromotionEndsChain: true},
	{Name: "Sri Lankan", BoardSize: 12, KingsFly: true, MenCaptureBackwards: false, MandatoryCapture: true, CapturePriority: CaptureAny, PromotionEndsChain: true},
	{Name: "Ghanaian", BoardSize: 10, KingsFly: true, MenCaptureBackwards: true, MandatoryCapture: true, CapturePriority: CaptureMaximum, PromotionEndsChain: true},
	{Name: "Filipino", BoardSize: 8, KingsFly: true, MenCaptureBackwards: true, MandatoryCapture: true, CapturePriority: CaptureMaximum, PromotionEndsChain: true},
	{Name: "Casual American", BoardSize: 8, KingsFly: false, MenCaptureBackwards: false, MandatoryCapture: false, CapturePriority: CaptureAny, PromotionEndsChain: true},
	{Name: "Casual International", BoardSize: 10, KingsFly: true, MenCaptureBackwards: true, MandatoryCapture: false, CapturePriority: CaptureAny, PromotionEndsChain: true},
}

func Variants() []Variant {
	return append([]Variant(nil), allVariants...)
}

func VariantByName(name string) (Variant, bool) {
	for _, v := range allVariants {
		if strings.EqualFold(v.Name, name) {
			return v, true
		}
	}
	return Variant{}, false
}

func DefaultVariant() Variant {
	return allVariants[0]
}

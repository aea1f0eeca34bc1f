package decode

import (
	"strings"

	"github.com/esolog/enclog-go/pkg/enclog/record"
)

// Gear entry sub-field positions inside one bracketed PLAYER_INFO element.
const (
	gearSlot = iota
	gearItemID
	gearIsCP
	gearLevel
	gearTrait
	gearQuality
	gearSetID
	gearEnchantKind
	gearEnchantIsCP
	gearEnchantLevel
	gearEnchantQuality
)

// gearPiece decodes one comma-separated gear entry. All sub-fields are best
// effort: a malformed entry yields a zero-valued piece rather than an error.
func (d *Decoder) gearPiece(raw string) record.GearPiece {
	sub := strings.Split(raw, ",")
	at := func(i int) string {
		if i >= len(sub) {
			return ""
		}
		return sub[i]
	}

	piece := record.GearPiece{
		Slot:            record.GearSlot(at(gearSlot)),
		ItemID:          bestInt(at(gearItemID)),
		IsChampionPoint: at(gearIsCP) == "T",
		Level:           int(bestInt(at(gearLevel))),
		Trait:           record.GearTrait(at(gearTrait)),
		Quality:         record.GearQuality(at(gearQuality)),
		SetID:           bestInt(at(gearSetID)),
	}

	// An enchant exists only when its level is positive. Jewelry written by
	// older clients omits the enchant tag; those glyphs are prismatic
	// recovery in practice, so default rather than fail.
	enchLevel := int(bestInt(at(gearEnchantLevel)))
	if enchLevel > 0 {
		kind := record.EnchantKind(at(gearEnchantKind))
		if (kind == "" || kind == record.EnchantInvalid) && piece.Slot.Jewelry() {
			kind = record.EnchantPrismaticRecovery
		}
		piece.Enchant = &record.Enchant{
			Kind:            kind,
			IsChampionPoint: at(gearEnchantIsCP) == "T",
			Level:           enchLevel,
			Quality:         record.GearQuality(at(gearEnchantQuality)),
		}
	}
	return piece
}

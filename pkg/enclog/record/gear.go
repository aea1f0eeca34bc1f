package record

// GearSlot is the equipment slot tag inside a PLAYER_INFO gear entry.
type GearSlot string

const (
	SlotHead         GearSlot = "HEAD"
	SlotShoulders    GearSlot = "SHOULDERS"
	SlotChest        GearSlot = "CHEST"
	SlotHand         GearSlot = "HAND"
	SlotWaist        GearSlot = "WAIST"
	SlotLegs         GearSlot = "LEGS"
	SlotFeet         GearSlot = "FEET"
	SlotNeck         GearSlot = "NECK"
	SlotRing1        GearSlot = "RING1"
	SlotRing2        GearSlot = "RING2"
	SlotMainHand     GearSlot = "MAIN_HAND"
	SlotOffHand      GearSlot = "OFF_HAND"
	SlotBackupMain   GearSlot = "BACKUP_MAIN"
	SlotBackupOff    GearSlot = "BACKUP_OFF"
	SlotCostume      GearSlot = "COSTUME"
	SlotPoison       GearSlot = "POISON"
	SlotBackupPoison GearSlot = "BACKUP_POISON"
	SlotUnknown      GearSlot = ""
)

// Jewelry reports whether the slot takes jewelry enchants.
// Jewelry entries with a missing enchant tag default to prismatic recovery.
func (s GearSlot) Jewelry() bool {
	return s == SlotNeck || s == SlotRing1 || s == SlotRing2
}

// GearTrait is the item trait tag.
type GearTrait string

const (
	TraitDivines     GearTrait = "ARMOR_DIVINES"
	TraitImpen       GearTrait = "ARMOR_IMPENETRABLE"
	TraitInfused     GearTrait = "ARMOR_INFUSED"
	TraitNirnhoned   GearTrait = "ARMOR_NIRNHONED"
	TraitReinforced  GearTrait = "ARMOR_REINFORCED"
	TraitSturdy      GearTrait = "ARMOR_STURDY"
	TraitTraining    GearTrait = "ARMOR_TRAINING"
	TraitWellFitted  GearTrait = "ARMOR_WELL_FITTED"
	TraitWpnCharged  GearTrait = "WEAPON_CHARGED"
	TraitWpnDefend   GearTrait = "WEAPON_DEFENDING"
	TraitWpnInfused  GearTrait = "WEAPON_INFUSED"
	TraitWpnNirn     GearTrait = "WEAPON_NIRNHONED"
	TraitWpnPowered  GearTrait = "WEAPON_POWERED"
	TraitWpnPrecise  GearTrait = "WEAPON_PRECISE"
	TraitWpnSharp    GearTrait = "WEAPON_SHARPENED"
	TraitWpnTraining GearTrait = "WEAPON_TRAINING"
	TraitJwlArcane   GearTrait = "JEWELRY_ARCANE"
	TraitJwlBloodth  GearTrait = "JEWELRY_BLOODTHIRSTY"
	TraitJwlHarmony  GearTrait = "JEWELRY_HARMONY"
	TraitJwlHealthy  GearTrait = "JEWELRY_HEALTHY"
	TraitJwlInfused  GearTrait = "JEWELRY_INFUSED"
	TraitJwlProtect  GearTrait = "JEWELRY_PROTECTIVE"
	TraitJwlRobust   GearTrait = "JEWELRY_ROBUST"
	TraitJwlSwift    GearTrait = "JEWELRY_SWIFT"
	TraitJwlTriune   GearTrait = "JEWELRY_TRIUNE"
	TraitIntricate   GearTrait = "ARMOR_INTRICATE"
	TraitOrnate      GearTrait = "ARMOR_ORNATE"
	TraitNone        GearTrait = "NONE"
)

// GearQuality is the item quality tag.
type GearQuality string

const (
	QualityTrash     GearQuality = "TRASH"
	QualityNormal    GearQuality = "NORMAL"
	QualityFine      GearQuality = "FINE"
	QualitySuperior  GearQuality = "SUPERIOR"
	QualityEpic      GearQuality = "EPIC"
	QualityLegendary GearQuality = "LEGENDARY"
	QualityMythic    GearQuality = "MYTHIC_OVERRIDE"
)

// EnchantKind is the glyph effect tag on a gear enchant.
type EnchantKind string

const (
	EnchantInvalid                EnchantKind = "INVALID"
	EnchantAbsorbHealth           EnchantKind = "ABSORB_HEALTH"
	EnchantAbsorbMagicka          EnchantKind = "ABSORB_MAGICKA"
	EnchantAbsorbStamina          EnchantKind = "ABSORB_STAMINA"
	EnchantBefouled               EnchantKind = "BEFOULED_WEAPON"
	EnchantBerserker              EnchantKind = "BERSERKER"
	EnchantChargedWeapon          EnchantKind = "CHARGED_WEAPON"
	EnchantDamageShield           EnchantKind = "DAMAGE_SHIELD"
	EnchantDiseaseResist          EnchantKind = "DISEASE_RESISTANT"
	EnchantFieryWeapon            EnchantKind = "FIERY_WEAPON"
	EnchantFrozenWeapon           EnchantKind = "FROZEN_WEAPON"
	EnchantHealth                 EnchantKind = "HEALTH"
	EnchantHealthRegen            EnchantKind = "HEALTH_REGEN"
	EnchantIncreaseBashDamage     EnchantKind = "INCREASE_BASH_DAMAGE"
	EnchantIncreasePhysicalDamage EnchantKind = "INCREASE_PHYSICAL_DAMAGE"
	EnchantIncreaseSpellDamage    EnchantKind = "INCREASE_SPELL_DAMAGE"
	EnchantMagicka                EnchantKind = "MAGICKA"
	EnchantMagickaRegen           EnchantKind = "MAGICKA_REGEN"
	EnchantPoisonedWeapon         EnchantKind = "POISONED_WEAPON"
	EnchantPrismaticDefense       EnchantKind = "PRISMATIC_DEFENSE"
	EnchantPrismaticOnslaught     EnchantKind = "PRISMATIC_ONSLAUGHT"
	EnchantPrismaticRecovery      EnchantKind = "PRISMATIC_RECOVERY"
	EnchantReduceArmor            EnchantKind = "REDUCE_ARMOR"
	EnchantReduceBlockAndBash     EnchantKind = "REDUCE_BLOCK_AND_BASH"
	EnchantReduceFeatCost         EnchantKind = "REDUCE_FEAT_COST"
	EnchantReducePotionCooldown   EnchantKind = "REDUCE_POTION_COOLDOWN"
	EnchantReduceSpellCost        EnchantKind = "REDUCE_SPELL_COST"
	EnchantStamina                EnchantKind = "STAMINA"
	EnchantStaminaRegen           EnchantKind = "STAMINA_REGEN"
)

// Enchant is one glyph applied to a gear piece. Only constructed when the
// enchant level is greater than zero.
type Enchant struct {
	Kind            EnchantKind
	IsChampionPoint bool
	Level           int
	Quality         GearQuality
}

// GearPiece is one equipped item inside a PLAYER_INFO gear array.
type GearPiece struct {
	Slot            GearSlot
	ItemID          int64
	IsChampionPoint bool
	Level           int
	Trait           GearTrait
	Quality         GearQuality
	SetID           int64
	Enchant         *Enchant
}

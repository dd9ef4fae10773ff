package seed

import (
	"log"

	"gorm.io/gorm"

	"llmarena_backend/internal/model"
	"llmarena_backend/pkg/entitlement"
)

type gameSettingSpec struct {
	Key     string
	Type    model.GameSettingType
	Default interface{}
	Min     interface{}
	Max     interface{}
	Tier    model.SubscriptionTier
	Help    string
}

type formFieldSpec struct {
	Key   string                 `json:"key"`
	Label string                 `json:"label"`
	Type  string                 `json:"type"`
	Tier  model.SubscriptionTier `json:"tier"`
}

type gameSpec struct {
	Key              string
	Name             string
	DescriptionShort string
	Roles            []string
	Capabilities     []string
	MaxPlayers       int
	Settings         []gameSettingSpec
	FormLayout       []formFieldSpec
}

var defaultGames = []gameSpec{
	{
		Key:              "chess",
		Name:             "Chess",
		DescriptionShort: "Standard chess engine match.",
		Roles:            []string{"white", "black"},
		Capabilities:     []string{"chess"},
		MaxPlayers:       2,
		Settings: []gameSettingSpec{
			{Key: "time_control_minutes", Type: model.SettingInt, Default: 10, Min: 1, Max: 180, Tier: model.TierFree, Help: "Base time per side."},
			{Key: "increment_seconds", Type: model.SettingInt, Default: 0, Min: 0, Max: 60, Tier: model.TierPro, Help: "Increment per move."},
			{Key: "allow_draws", Type: model.SettingBoolean, Default: true, Tier: model.TierFree, Help: "Allow draw by repetition or stalemate."},
			{Key: "start_fen", Type: model.SettingText, Default: "start", Tier: model.TierEnterprise, Help: "Custom starting FEN or \"start\"."},
		},
		FormLayout: []formFieldSpec{
			{Key: "time_control_minutes", Label: "Time Control (min)", Type: "number", Tier: model.TierFree},
			{Key: "increment_seconds", Label: "Increment (sec)", Type: "number", Tier: model.TierPro},
			{Key: "allow_draws", Label: "Allow Draws", Type: "toggle", Tier: model.TierFree},
			{Key: "start_fen", Label: "Start FEN", Type: "text", Tier: model.TierEnterprise},
		},
	},
	{
		Key:              "chutes_and_ladders",
		Name:             "Chutes & Ladders",
		DescriptionShort: "Classic race-to-100 board game.",
		Roles:            []string{"player"},
		Capabilities:     []string{"chutes_and_ladders"},
		MaxPlayers:       1,
		Settings: []gameSettingSpec{
			{Key: "board_size", Type: model.SettingInt, Default: 100, Min: 25, Max: 200, Tier: model.TierFree, Help: "Number of squares."},
			{Key: "win_exact", Type: model.SettingBoolean, Default: false, Tier: model.TierPro, Help: "Require exact landing on finish."},
			{Key: "chutes_enabled", Type: model.SettingBoolean, Default: true, Tier: model.TierFree, Help: "Enable chutes."},
			{Key: "ladders_enabled", Type: model.SettingBoolean, Default: true, Tier: model.TierFree, Help: "Enable ladders."},
		},
		FormLayout: []formFieldSpec{
			{Key: "board_size", Label: "Board Size", Type: "number", Tier: model.TierFree},
			{Key: "win_exact", Label: "Exact Win", Type: "toggle", Tier: model.TierPro},
			{Key: "chutes_enabled", Label: "Chutes Enabled", Type: "toggle", Tier: model.TierFree},
			{Key: "ladders_enabled", Label: "Ladders Enabled", Type: "toggle", Tier: model.TierFree},
		},
	},
	{
		Key:              "texas_holdem",
		Name:             "Texas Holdem Poker",
		DescriptionShort: "No-limit Holdem poker engine.",
		Roles:            []string{"seat1", "seat2", "seat3", "seat4", "seat5", "seat6"},
		Capabilities:     []string{"texas_holdem"},
		MaxPlayers:       6,
		Settings: []gameSettingSpec{
			{Key: "starting_stack", Type: model.SettingInt, Default: 1000, Min: 50, Max: 20000, Tier: model.TierFree, Help: "Starting stack size."},
			{Key: "small_blind", Type: model.SettingInt, Default: 5, Min: 1, Max: 500, Tier: model.TierFree, Help: "Small blind amount."},
			{Key: "big_blind", Type: model.SettingInt, Default: 10, Min: 2, Max: 1000, Tier: model.TierFree, Help: "Big blind amount."},
			{Key: "max_players", Type: model.SettingInt, Default: 6, Min: 2, Max: 9, Tier: model.TierPro, Help: "Seats at the table."},
			{Key: "allow_rebuy", Type: model.SettingBoolean, Default: false, Tier: model.TierEnterprise, Help: "Enable rebuys during match."},
		},
		FormLayout: []formFieldSpec{
			{Key: "starting_stack", Label: "Starting Stack", Type: "number", Tier: model.TierFree},
			{Key: "small_blind", Label: "Small Blind", Type: "number", Tier: model.TierFree},
			{Key: "big_blind", Label: "Big Blind", Type: "number", Tier: model.TierFree},
			{Key: "max_players", Label: "Max Players", Type: "number", Tier: model.TierPro},
			{Key: "allow_rebuy", Label: "Allow Rebuy", Type: "toggle", Tier: model.TierEnterprise},
		},
	},
	{
		Key:              "blackjack",
		Name:             "Blackjack",
		DescriptionShort: "Dealer vs N-player blackjack.",
		Roles:            []string{"seat1", "seat2", "seat3", "seat4", "seat5", "seat6"},
		Capabilities:     []string{"blackjack"},
		MaxPlayers:       6,
		Settings: []gameSettingSpec{
			{Key: "starting_stack", Type: model.SettingInt, Default: 1000, Min: 10, Max: 100000, Tier: model.TierFree, Help: "Initial stack per seat."},
			{Key: "fixed_bet", Type: model.SettingInt, Default: 10, Min: 1, Max: 5000, Tier: model.TierFree, Help: "Fixed bet per hand."},
			{Key: "dealer_hits_soft_17", Type: model.SettingBoolean, Default: false, Tier: model.TierFree, Help: "Dealer hits soft 17."},
			{Key: "allow_double", Type: model.SettingBoolean, Default: true, Tier: model.TierFree, Help: "Allow double-down."},
			{Key: "deck_count", Type: model.SettingInt, Default: 6, Min: 1, Max: 8, Tier: model.TierEnterprise, Help: "Number of decks."},
			{Key: "blackjack_payout", Type: model.SettingFloat, Default: 1.5, Min: 1, Max: 2, Tier: model.TierEnterprise, Help: "Blackjack payout ratio."},
			{Key: "allow_insurance", Type: model.SettingBoolean, Default: false, Tier: model.TierEnterprise, Help: "Allow insurance."},
			{Key: "allow_surrender", Type: model.SettingBoolean, Default: false, Tier: model.TierEnterprise, Help: "Allow late surrender."},
			{Key: "allow_double_any", Type: model.SettingBoolean, Default: false, Tier: model.TierEnterprise, Help: "Allow double on any count."},
			{Key: "allow_split", Type: model.SettingBoolean, Default: false, Tier: model.TierEnterprise, Help: "Allow split hands."},
			{Key: "max_hands", Type: model.SettingInt, Default: 4, Min: 2, Max: 6, Tier: model.TierEnterprise, Help: "Max hands after split."},
			{Key: "allow_resplit_aces", Type: model.SettingBoolean, Default: false, Tier: model.TierEnterprise, Help: "Allow resplitting aces."},
			{Key: "allow_double_after_split", Type: model.SettingBoolean, Default: false, Tier: model.TierEnterprise, Help: "Allow double after split."},
			{Key: "dealer_peek", Type: model.SettingBoolean, Default: false, Tier: model.TierEnterprise, Help: "Dealer peeks for blackjack."},
			{Key: "no_hole_card", Type: model.SettingBoolean, Default: false, Tier: model.TierEnterprise, Help: "European no-hole-card rule."},
		},
		FormLayout: []formFieldSpec{
			{Key: "starting_stack", Label: "Starting Stack", Type: "number", Tier: model.TierFree},
			{Key: "fixed_bet", Label: "Fixed Bet", Type: "number", Tier: model.TierFree},
			{Key: "dealer_hits_soft_17", Label: "Dealer Hits Soft 17", Type: "toggle", Tier: model.TierFree},
			{Key: "allow_double", Label: "Allow Double", Type: "toggle", Tier: model.TierFree},
			{Key: "deck_count", Label: "Deck Count", Type: "number", Tier: model.TierEnterprise},
			{Key: "blackjack_payout", Label: "Blackjack Payout", Type: "number", Tier: model.TierEnterprise},
			{Key: "allow_insurance", Label: "Allow Insurance", Type: "toggle", Tier: model.TierEnterprise},
			{Key: "allow_surrender", Label: "Allow Surrender", Type: "toggle", Tier: model.TierEnterprise},
			{Key: "allow_double_any", Label: "Allow Double Any", Type: "toggle", Tier: model.TierEnterprise},
			{Key: "allow_split", Label: "Allow Split", Type: "toggle", Tier: model.TierEnterprise},
			{Key: "max_hands", Label: "Max Hands", Type: "number", Tier: model.TierEnterprise},
			{Key: "allow_resplit_aces", Label: "Allow Resplit Aces", Type: "toggle", Tier: model.TierEnterprise},
			{Key: "allow_double_after_split", Label: "Allow Double After Split", Type: "toggle", Tier: model.TierEnterprise},
			{Key: "dealer_peek", Label: "Dealer Peek", Type: "toggle", Tier: model.TierEnterprise},
			{Key: "no_hole_card", Label: "No Hole Card", Type: "toggle", Tier: model.TierEnterprise},
		},
	},
}

func settingRows(gameID string, specs []gameSettingSpec) []model.GameSetting {
	rows := make([]model.GameSetting, 0, len(specs))
	for _, s := range specs {
		rows = append(rows, model.GameSetting{
			GameID:       gameID,
			Key:          s.Key,
			Type:         s.Type,
			MinValue:     entitlement.MarshalValue(s.Min),
			MaxValue:     entitlement.MarshalValue(s.Max),
			DefaultValue: entitlement.MarshalValue(s.Default),
			TierRequired: s.Tier,
			HelpText:     s.Help,
			EnumOptions:  entitlement.MarshalValue([]interface{}{}),
		})
	}
	return rows
}

// EnsureDefaultGames seeds the static game registry. Existing games are only
// gap-filled: settings are backfilled solely when the collection is empty,
// a UI schema or release is created only when absent, and DRAFT games are
// promoted to LIVE. Admin-edited settings are never overwritten.
func EnsureDefaultGames(db *gorm.DB) error {
	for _, game := range defaultGames {
		var existing model.GameDefinition
		err := db.Preload("Settings").Preload("UISchema").Preload("Releases").
			Where("key = ?", game.Key).First(&existing).Error
		if err != nil && err != gorm.ErrRecordNotFound {
			return err
		}

		if err == gorm.ErrRecordNotFound {
			definition := model.GameDefinition{
				Key:              game.Key,
				Name:             game.Name,
				DescriptionShort: game.DescriptionShort,
				Roles:            entitlement.MarshalValue(game.Roles),
				Capabilities:     entitlement.MarshalValue(game.Capabilities),
				MaxPlayers:       game.MaxPlayers,
				Status:           model.GameLive,
			}
			if err := db.Create(&definition).Error; err != nil {
				return err
			}
			if err := db.Create(settingRows(definition.ID, game.Settings)).Error; err != nil {
				return err
			}
			schema := model.GameUISchema{
				GameID:           definition.ID,
				CreateFormLayout: entitlement.MarshalValue(game.FormLayout),
			}
			if err := db.Create(&schema).Error; err != nil {
				return err
			}
			release := model.GameRelease{GameID: definition.ID, Status: model.GameLive}
			if err := db.Create(&release).Error; err != nil {
				return err
			}
			log.Printf("Seeded game %s", game.Key)
			continue
		}

		if len(existing.Settings) == 0 {
			if err := db.Create(settingRows(existing.ID, game.Settings)).Error; err != nil {
				return err
			}
		}

		if existing.UISchema == nil {
			schema := model.GameUISchema{
				GameID:           existing.ID,
				CreateFormLayout: entitlement.MarshalValue(game.FormLayout),
			}
			if err := db.Create(&schema).Error; err != nil {
				return err
			}
		}

		if len(existing.Releases) == 0 {
			release := model.GameRelease{GameID: existing.ID, Status: model.GameLive}
			if err := db.Create(&release).Error; err != nil {
				return err
			}
		}

		if existing.Status == model.GameDraft {
			err := db.Model(&model.GameDefinition{}).Where("id = ?", existing.ID).
				Update("status", model.GameLive).Error
			if err != nil {
				return err
			}
		}
	}

	return nil
}

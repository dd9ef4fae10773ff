package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"llmarena_backend/internal/model"
	"llmarena_backend/pkg/entitlement"
)

func TestEnsureDefaultGamesCreatesCatalog(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, EnsureDefaultGames(db))

	for _, key := range []string{"chess", "chutes_and_ladders", "texas_holdem", "blackjack"} {
		var game model.GameDefinition
		err := db.Preload("Settings").Preload("UISchema").Preload("Releases").
			Where("key = ?", key).First(&game).Error
		require.NoError(t, err, "game %s must exist", key)

		assert.Equal(t, model.GameLive, game.Status)
		assert.NotEmpty(t, game.Settings)
		assert.NotNil(t, game.UISchema)
		assert.NotEmpty(t, game.Releases)
	}
}

func TestEnsureDefaultGamesIdempotent(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, EnsureDefaultGames(db))
	require.NoError(t, EnsureDefaultGames(db))

	var games int64
	require.NoError(t, db.Model(&model.GameDefinition{}).Count(&games).Error)
	assert.Equal(t, int64(4), games)

	var releases int64
	require.NoError(t, db.Model(&model.GameRelease{}).Count(&releases).Error)
	assert.Equal(t, int64(4), releases, "rerun must not stack releases")
}

func TestEnsureDefaultGamesNeverClobbersEditedSettings(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, EnsureDefaultGames(db))

	var game model.GameDefinition
	require.NoError(t, db.Where("key = ?", "chess").First(&game).Error)

	edited := entitlement.MarshalValue(30)
	err := db.Model(&model.GameSetting{}).
		Where("game_id = ? AND key = ?", game.ID, "time_control_minutes").
		Update("default_value", edited).Error
	require.NoError(t, err)

	require.NoError(t, EnsureDefaultGames(db))

	var setting model.GameSetting
	require.NoError(t, db.Where("game_id = ? AND key = ?", game.ID, "time_control_minutes").
		First(&setting).Error)
	assert.Equal(t, float64(30), entitlement.UnmarshalValue(setting.DefaultValue))
}

func TestEnsureDefaultGamesBackfillsEmptySettings(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, EnsureDefaultGames(db))

	var game model.GameDefinition
	require.NoError(t, db.Where("key = ?", "blackjack").First(&game).Error)
	require.NoError(t, db.Where("game_id = ?", game.ID).Delete(&model.GameSetting{}).Error)

	require.NoError(t, EnsureDefaultGames(db))

	var count int64
	require.NoError(t, db.Model(&model.GameSetting{}).Where("game_id = ?", game.ID).Count(&count).Error)
	assert.Equal(t, int64(15), count)
}

func TestEnsureDefaultGamesPromotesDraft(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, EnsureDefaultGames(db))

	require.NoError(t, db.Model(&model.GameDefinition{}).
		Where("key = ?", "texas_holdem").
		Update("status", model.GameDraft).Error)

	require.NoError(t, EnsureDefaultGames(db))

	var game model.GameDefinition
	require.NoError(t, db.Where("key = ?", "texas_holdem").First(&game).Error)
	assert.Equal(t, model.GameLive, game.Status)
}

package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"llmarena_backend/internal/model"
	"llmarena_backend/pkg/entitlement"
	"llmarena_backend/pkg/rbac"
)

func TestFixAdminEntitlementsPromotesAndOverrides(t *testing.T) {
	db := newTestDB(t)

	user := model.User{Email: "demoted@example.com", Password: "x", Role: model.RoleUser}
	require.NoError(t, db.Create(&user).Error)

	require.NoError(t, FixAdminEntitlements(db, user.Email))

	var fixed model.User
	require.NoError(t, db.Where("id = ?", user.ID).First(&fixed).Error)
	assert.Equal(t, model.RoleAdmin, fixed.Role)

	var override model.EntitlementOverride
	require.NoError(t, db.Where("target_id = ? AND entitlement_key = ?", user.ID, "chat.access").
		First(&override).Error)
	assert.True(t, override.Enabled)
}

func TestFixAdminEntitlementsUnknownUser(t *testing.T) {
	db := newTestDB(t)

	err := FixAdminEntitlements(db, "nobody@example.com")
	assert.Error(t, err)
}

func TestBackfillBlackjackCapability(t *testing.T) {
	db := newTestDB(t)

	owner := model.User{Email: "o@example.com", Password: "x"}
	require.NoError(t, db.Create(&owner).Error)

	poker := model.AIModel{
		Name: "Poker Bot", APIProvider: "mock", APIModelID: "mock-v1", OwnerID: owner.ID,
		Capabilities: entitlement.MarshalValue([]string{"texas_holdem"}),
	}
	chess := model.AIModel{
		Name: "Chess Bot", APIProvider: "mock", APIModelID: "mock-v1", OwnerID: owner.ID,
		Capabilities: entitlement.MarshalValue([]string{"chess"}),
	}
	both := model.AIModel{
		Name: "Card Bot", APIProvider: "mock", APIModelID: "mock-v1", OwnerID: owner.ID,
		Capabilities: entitlement.MarshalValue([]string{"texas_holdem", "blackjack"}),
	}
	require.NoError(t, db.Create(&poker).Error)
	require.NoError(t, db.Create(&chess).Error)
	require.NoError(t, db.Create(&both).Error)

	require.NoError(t, BackfillBlackjackCapability(db))

	var updated model.AIModel
	require.NoError(t, db.Where("id = ?", poker.ID).First(&updated).Error)
	assert.Equal(t, []string{"texas_holdem", "blackjack"}, updated.GetCapabilities())

	require.NoError(t, db.Where("id = ?", chess.ID).First(&updated).Error)
	assert.Equal(t, []string{"chess"}, updated.GetCapabilities(), "non-holdem models untouched")

	require.NoError(t, db.Where("id = ?", both.ID).First(&updated).Error)
	assert.Equal(t, []string{"texas_holdem", "blackjack"}, updated.GetCapabilities(), "already-capable models untouched")
}

func TestGrantPermissionOverride(t *testing.T) {
	db := newTestDB(t)

	user := model.User{Email: "support@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	require.NoError(t, GrantPermissionOverride(db, user.Email, "admin.models.edit", "Create or edit models"))
	// Rerun is a no-op, not a duplicate.
	require.NoError(t, GrantPermissionOverride(db, user.Email, "admin.models.edit", "Create or edit models"))

	var count int64
	require.NoError(t, db.Model(&model.RbacUserPermissionOverride{}).
		Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	ev, err := rbac.LoadEvaluator(db, user.ID)
	require.NoError(t, err)
	assert.True(t, ev.Can("admin.models.edit"))
}

package rbac

type PermissionDef struct {
	Key         string
	Description string
}

// Permissions is the full permission catalog. Seeders upsert these by key.
var Permissions = []PermissionDef{
	{Key: "admin.access", Description: "Access admin portal"},
	{Key: "admin.dashboard.view", Description: "View admin dashboard"},
	{Key: "admin.users.view", Description: "View users"},
	{Key: "admin.users.edit", Description: "Edit users"},
	{Key: "admin.users.password_reset", Description: "Reset user passwords"},
	{Key: "admin.users.2fa_reset", Description: "Reset user 2FA"},
	{Key: "admin.users.ban", Description: "Ban users"},
	{Key: "admin.users.unban", Description: "Unban users"},
	{Key: "admin.users.export", Description: "Export users"},
	{Key: "admin.models.view", Description: "View models"},
	{Key: "admin.models.edit", Description: "Create or edit models"},
	{Key: "admin.api_keys.view", Description: "View API keys"},
	{Key: "admin.api_keys.edit", Description: "Edit API key scopes and status"},
	{Key: "admin.api_keys.revoke", Description: "Revoke API keys"},
	{Key: "admin.matches.view", Description: "View matches"},
	{Key: "admin.matches.cancel", Description: "Cancel matches"},
	{Key: "admin.matches.retry", Description: "Retry matches"},
	{Key: "admin.queue.view", Description: "View queue"},
	{Key: "admin.queue.retry", Description: "Retry queue jobs"},
	{Key: "admin.queue.clean", Description: "Clean queue"},
	{Key: "admin.analytics.view", Description: "View analytics"},
	{Key: "admin.analytics.edit", Description: "Edit analytics layout"},
	{Key: "admin.media.view", Description: "View media library"},
	{Key: "admin.media.upload", Description: "Upload media"},
	{Key: "admin.media.delete", Description: "Delete media"},
	{Key: "admin.content.view", Description: "View content"},
	{Key: "admin.content.edit", Description: "Edit content"},
	{Key: "admin.games.view", Description: "View game builder"},
	{Key: "admin.games.edit", Description: "Edit game definitions"},
	{Key: "admin.games.publish", Description: "Publish or schedule games"},
	{Key: "admin.settings.view", Description: "View system settings"},
	{Key: "admin.settings.edit", Description: "Edit system settings"},
	{Key: "admin.settings.force_logout", Description: "Force logout all users"},
	{Key: "admin.settings.audit_export", Description: "Export audit log"},
	{Key: "admin.comms.test", Description: "Send comms test messages"},
	{Key: "admin.audit.view", Description: "View admin audit log"},
	{Key: "admin.audit.export", Description: "Export admin audit log"},
	{Key: "admin.approvals.view", Description: "View access requests"},
	{Key: "admin.approvals.edit", Description: "Approve or deny access requests"},
	{Key: "admin.rbac.view", Description: "View RBAC configuration"},
	{Key: "admin.rbac.edit", Description: "Edit RBAC configuration"},
	{Key: "admin.entitlements.view", Description: "View subscription entitlements"},
	{Key: "admin.entitlements.edit", Description: "Edit subscription entitlements"},
	{Key: "admin.plans.view", Description: "View subscription plans"},
	{Key: "admin.plans.edit", Description: "Edit subscription plans"},
	{Key: "admin.hr.view", Description: "View HR console"},
	{Key: "admin.hr.edit", Description: "Manage HR jobs and applications"},
	{Key: "admin.chat.manage", Description: "Manage chat channels and settings"},
	{Key: "admin.chat.broadcast", Description: "Broadcast system-wide alerts"},
	{Key: "admin.settings.chat_config", Description: "Configure which chat settings users can manage"},
	{Key: "admin.users.chat_settings", Description: "Modify chat settings for specific users"},
	{Key: "admin.ai_chat.access", Description: "Access administrative AI assistant"},
	{Key: "admin.ai_chat.query", Description: "Interact with administrative AI assistant"},
	{Key: "admin.ai_chat.export", Description: "Export administrative AI chat logs"},
}

// AllPermissionKeys returns every catalog key, in declaration order.
func AllPermissionKeys() []string {
	keys := make([]string, 0, len(Permissions))
	for _, p := range Permissions {
		keys = append(keys, p.Key)
	}
	return keys
}

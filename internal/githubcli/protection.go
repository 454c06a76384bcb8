package githubcli

// RequiredCheck identifies a single required status check on a protected branch.
//
// AppID is nil when GitHub reports the check without a producing application,
// meaning any source may satisfy it.
type RequiredCheck struct {
	Context string `json:"context"`
	AppID   *int64 `json:"app_id,omitempty"`
}

// EnabledSetting models the {enabled: bool} wrapper objects returned by the
// branch protection read endpoint.
type EnabledSetting struct {
	URL     string `json:"url,omitempty"`
	Enabled bool   `json:"enabled"`
}

// RequiredStatusChecks models the required_status_checks section of the read schema.
type RequiredStatusChecks struct {
	URL         string          `json:"url,omitempty"`
	Strict      bool            `json:"strict"`
	Contexts    []string        `json:"contexts"`
	ContextsURL string          `json:"contexts_url,omitempty"`
	Checks      []RequiredCheck `json:"checks"`
}

// ProtectionActor names a user, team, or application referenced by restrictions.
type ProtectionActor struct {
	Login string `json:"login,omitempty"`
	Slug  string `json:"slug,omitempty"`
}

// DismissalRestrictions models the dismissal_restrictions section of the read schema.
type DismissalRestrictions struct {
	URL      string            `json:"url,omitempty"`
	UsersURL string            `json:"users_url,omitempty"`
	TeamsURL string            `json:"teams_url,omitempty"`
	Users    []ProtectionActor `json:"users"`
	Teams    []ProtectionActor `json:"teams"`
	Apps     []ProtectionActor `json:"apps"`
}

// RequiredPullRequestReviews models the required_pull_request_reviews section of the read schema.
type RequiredPullRequestReviews struct {
	URL                          string                 `json:"url,omitempty"`
	DismissStaleReviews          bool                   `json:"dismiss_stale_reviews"`
	RequireCodeOwnerReviews      bool                   `json:"require_code_owner_reviews"`
	RequiredApprovingReviewCount int                    `json:"required_approving_review_count"`
	RequireLastPushApproval      bool                   `json:"require_last_push_approval"`
	DismissalRestrictions        *DismissalRestrictions `json:"dismissal_restrictions,omitempty"`
}

// PushRestrictions models the restrictions section of the read schema.
type PushRestrictions struct {
	URL      string            `json:"url,omitempty"`
	UsersURL string            `json:"users_url,omitempty"`
	TeamsURL string            `json:"teams_url,omitempty"`
	AppsURL  string            `json:"apps_url,omitempty"`
	Users    []ProtectionActor `json:"users"`
	Teams    []ProtectionActor `json:"teams"`
	Apps     []ProtectionActor `json:"apps"`
}

// BranchProtection is the branch protection configuration as returned by the
// read endpoint, with {enabled} wrappers and hypermedia URL fields intact.
type BranchProtection struct {
	URL                            string                      `json:"url,omitempty"`
	RequiredStatusChecks           *RequiredStatusChecks       `json:"required_status_checks,omitempty"`
	RequiredPullRequestReviews     *RequiredPullRequestReviews `json:"required_pull_request_reviews,omitempty"`
	RequiredSignatures             *EnabledSetting             `json:"required_signatures,omitempty"`
	EnforceAdmins                  *EnabledSetting             `json:"enforce_admins,omitempty"`
	RequiredLinearHistory          *EnabledSetting             `json:"required_linear_history,omitempty"`
	AllowForcePushes               *EnabledSetting             `json:"allow_force_pushes,omitempty"`
	AllowDeletions                 *EnabledSetting             `json:"allow_deletions,omitempty"`
	BlockCreations                 *EnabledSetting             `json:"block_creations,omitempty"`
	RequiredConversationResolution *EnabledSetting             `json:"required_conversation_resolution,omitempty"`
	LockBranch                     *EnabledSetting             `json:"lock_branch,omitempty"`
	AllowForkSyncing               *EnabledSetting             `json:"allow_fork_syncing,omitempty"`
	Restrictions                   *PushRestrictions           `json:"restrictions,omitempty"`
}

// RequiredStatusChecksUpdate is the required_status_checks section accepted by
// the replacement endpoint; the deprecated contexts list is never written.
type RequiredStatusChecksUpdate struct {
	Strict bool            `json:"strict"`
	Checks []RequiredCheck `json:"checks"`
}

// DismissalRestrictionsUpdate names reviewers allowed to dismiss reviews in the write schema.
type DismissalRestrictionsUpdate struct {
	Users []string `json:"users"`
	Teams []string `json:"teams"`
	Apps  []string `json:"apps"`
}

// RequiredPullRequestReviewsUpdate is the required_pull_request_reviews section of the write schema.
type RequiredPullRequestReviewsUpdate struct {
	DismissStaleReviews          bool                         `json:"dismiss_stale_reviews"`
	RequireCodeOwnerReviews      bool                         `json:"require_code_owner_reviews"`
	RequiredApprovingReviewCount int                          `json:"required_approving_review_count"`
	RequireLastPushApproval      bool                         `json:"require_last_push_approval"`
	DismissalRestrictions        *DismissalRestrictionsUpdate `json:"dismissal_restrictions,omitempty"`
}

// PushRestrictionsUpdate is the restrictions section of the write schema.
type PushRestrictionsUpdate struct {
	Users []string `json:"users"`
	Teams []string `json:"teams"`
	Apps  []string `json:"apps"`
}

// BranchProtectionUpdate is the full replacement payload accepted by the write
// endpoint: bare booleans instead of {enabled} wrappers and no URL fields.
//
// The four leading sections are always serialized because the endpoint
// requires them to be present, null when absent.
type BranchProtectionUpdate struct {
	RequiredStatusChecks           *RequiredStatusChecksUpdate       `json:"required_status_checks"`
	EnforceAdmins                  *bool                             `json:"enforce_admins"`
	RequiredPullRequestReviews     *RequiredPullRequestReviewsUpdate `json:"required_pull_request_reviews"`
	Restrictions                   *PushRestrictionsUpdate           `json:"restrictions"`
	RequiredLinearHistory          *bool                             `json:"required_linear_history,omitempty"`
	AllowForcePushes               *bool                             `json:"allow_force_pushes,omitempty"`
	AllowDeletions                 *bool                             `json:"allow_deletions,omitempty"`
	BlockCreations                 *bool                             `json:"block_creations,omitempty"`
	RequiredConversationResolution *bool                             `json:"required_conversation_resolution,omitempty"`
	LockBranch                     *bool                             `json:"lock_branch,omitempty"`
	AllowForkSyncing               *bool                             `json:"allow_fork_syncing,omitempty"`
}

// BuildProtectionUpdate converts the read representation into the write
// representation, dropping derived fields and flattening wrapper objects. The
// mapping is total: every field the write endpoint accepts is derived from the
// read shape.
func BuildProtectionUpdate(protection BranchProtection) BranchProtectionUpdate {
	update := BranchProtectionUpdate{
		EnforceAdmins:                  enabledSettingValue(protection.EnforceAdmins),
		RequiredLinearHistory:          enabledSettingValue(protection.RequiredLinearHistory),
		AllowForcePushes:               enabledSettingValue(protection.AllowForcePushes),
		AllowDeletions:                 enabledSettingValue(protection.AllowDeletions),
		BlockCreations:                 enabledSettingValue(protection.BlockCreations),
		RequiredConversationResolution: enabledSettingValue(protection.RequiredConversationResolution),
		LockBranch:                     enabledSettingValue(protection.LockBranch),
		AllowForkSyncing:               enabledSettingValue(protection.AllowForkSyncing),
	}

	if protection.RequiredStatusChecks != nil {
		update.RequiredStatusChecks = &RequiredStatusChecksUpdate{
			Strict: protection.RequiredStatusChecks.Strict,
			Checks: append([]RequiredCheck{}, protection.RequiredStatusChecks.Checks...),
		}
	}

	if protection.RequiredPullRequestReviews != nil {
		reviewsUpdate := RequiredPullRequestReviewsUpdate{
			DismissStaleReviews:          protection.RequiredPullRequestReviews.DismissStaleReviews,
			RequireCodeOwnerReviews:      protection.RequiredPullRequestReviews.RequireCodeOwnerReviews,
			RequiredApprovingReviewCount: protection.RequiredPullRequestReviews.RequiredApprovingReviewCount,
			RequireLastPushApproval:      protection.RequiredPullRequestReviews.RequireLastPushApproval,
		}
		if protection.RequiredPullRequestReviews.DismissalRestrictions != nil {
			reviewsUpdate.DismissalRestrictions = &DismissalRestrictionsUpdate{
				Users: actorIdentifiers(protection.RequiredPullRequestReviews.DismissalRestrictions.Users, actorLoginIdentifier),
				Teams: actorIdentifiers(protection.RequiredPullRequestReviews.DismissalRestrictions.Teams, actorSlugIdentifier),
				Apps:  actorIdentifiers(protection.RequiredPullRequestReviews.DismissalRestrictions.Apps, actorSlugIdentifier),
			}
		}
		update.RequiredPullRequestReviews = &reviewsUpdate
	}

	if protection.Restrictions != nil {
		update.Restrictions = &PushRestrictionsUpdate{
			Users: actorIdentifiers(protection.Restrictions.Users, actorLoginIdentifier),
			Teams: actorIdentifiers(protection.Restrictions.Teams, actorSlugIdentifier),
			Apps:  actorIdentifiers(protection.Restrictions.Apps, actorSlugIdentifier),
		}
	}

	return update
}

type actorIdentifierSelector func(actor ProtectionActor) string

func actorLoginIdentifier(actor ProtectionActor) string {
	return actor.Login
}

func actorSlugIdentifier(actor ProtectionActor) string {
	return actor.Slug
}

func actorIdentifiers(actors []ProtectionActor, selector actorIdentifierSelector) []string {
	identifiers := make([]string, 0, len(actors))
	for _, actor := range actors {
		identifier := selector(actor)
		if len(identifier) == 0 {
			continue
		}
		identifiers = append(identifiers, identifier)
	}
	return identifiers
}

func enabledSettingValue(setting *EnabledSetting) *bool {
	if setting == nil {
		return nil
	}
	enabledValue := setting.Enabled
	return &enabledValue
}

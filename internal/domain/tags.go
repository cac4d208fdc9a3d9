package domain

// CacheTag labels the cached output of one resource. Mutations invalidate
// tags; reads are cached under a tag plus a request-specific key.
type CacheTag string

const (
	TagAccountTypes CacheTag = "account-types"
	TagAccounts     CacheTag = "accounts"
	TagBudgets      CacheTag = "budgets"
	TagCoupons      CacheTag = "coupons"
	TagMessages     CacheTag = "messages"
	TagWebhooks     CacheTag = "webhooks"
	TagCurrencies   CacheTag = "currencies"
)

// tagDependencies maps a tag to additional tags that must be invalidated
// with it. Applying a coupon mutates account state upstream, so coupon
// mutations also stale the accounts tag.
var tagDependencies = map[CacheTag][]CacheTag{
	TagCoupons: {TagAccounts},
}

// InvalidationSet returns the tag plus every dependent tag that must be
// invalidated when a mutation on this resource succeeds.
func InvalidationSet(tag CacheTag) []CacheTag {
	tags := []CacheTag{tag}
	return append(tags, tagDependencies[tag]...)
}

// AllTags lists every cache tag the gateway manages
func AllTags() []CacheTag {
	return []CacheTag{
		TagAccountTypes,
		TagAccounts,
		TagBudgets,
		TagCoupons,
		TagMessages,
		TagWebhooks,
		TagCurrencies,
	}
}

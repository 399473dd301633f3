package consts

const (
	// PostViewDedupKey 浏览去重标记，5 分钟窗口内同一 key 只计一次
	PostViewDedupKey = "post:view:dedup:"
	// PostDirtyKey 计数待校准帖子集合
	PostDirtyKey = "post:dirty"

	OtpSendLimitKey  = "otp:send:limit:"
	OtpResetTokenKey = "otp:reset:token:"

	// TokenDenylistKey 已登出访问令牌的签名黑名单
	TokenDenylistKey = "token:denylist:"
)

const (
	PostLikeLock      = "post:like:lock:"
	PostReconcileLock = "post:reconcile:lock"
)

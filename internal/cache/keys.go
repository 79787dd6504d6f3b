package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix         = "user:%d"
	PostKeyPrefix         = "post:%d"
	CommunityKeyPrefix    = "community:%d"
	ConversationKeyPrefix = "conversation:%d"
	MessageHistoryPrefix  = "conversation:%d:messages"
	MenuKey               = "food:menu"
)

const (
	UserTTL           = 5 * time.Minute
	CommunityTTL      = 10 * time.Minute
	MessageHistoryTTL = 2 * time.Minute
	PostTTL           = 30 * time.Minute
	MenuTTL           = 15 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func CommunityKey(communityID uint) string {
	return fmt.Sprintf(CommunityKeyPrefix, communityID)
}

func ConversationKey(conversationID uint) string {
	return fmt.Sprintf(ConversationKeyPrefix, conversationID)
}

func MessageHistoryKey(conversationID uint) string {
	return fmt.Sprintf(MessageHistoryPrefix, conversationID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

func InvalidateCommunity(ctx context.Context, communityID uint) {
	Invalidate(ctx, CommunityKey(communityID))
}

func InvalidateConversation(ctx context.Context, conversationID uint) {
	Invalidate(ctx, ConversationKey(conversationID))
	Invalidate(ctx, MessageHistoryKey(conversationID))
}

func InvalidateMenu(ctx context.Context) {
	Invalidate(ctx, MenuKey)
}

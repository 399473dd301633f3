package repository

import (
	"Inkwell/internal/model"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 基于内存 SQLite 的测试库，每个用例独立一份
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// 内存库限制单连接，多连接会各自持有一份空库
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Member{},
		&model.Hashtag{},
		&model.Post{},
		&model.PostLike{},
		&model.PostView{},
		&model.Follow{},
		&model.Otp{},
		&model.RefreshToken{},
		&model.PostDailyMetric{},
	))
	return db
}

func seedMember(t *testing.T, db *gorm.DB, email, nickname string) *model.Member {
	t.Helper()
	member := &model.Member{
		Email:     email,
		Password:  "hashed",
		Nickname:  nickname,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, db.Create(member).Error)
	return member
}

func seedPost(t *testing.T, db *gorm.DB, memberID uint64, title string) *model.Post {
	t.Helper()
	post := &model.Post{
		MemberID:       memberID,
		AuthorNickname: "author",
		Title:          title,
		Content:        "content",
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

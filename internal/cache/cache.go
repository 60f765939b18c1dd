package cache

import (
	"myzone/internal/models"

	lru "github.com/hashicorp/golang-lru/v2"
	"gorm.io/gorm"
)

type Cache struct {
	db    *gorm.DB
	users *lru.Cache[string, *models.User]
}

func New(db *gorm.DB) *Cache {
	users, err := lru.New[string, *models.User](512)
	if err != nil {
		panic(err)
	}

	return &Cache{
		db:    db,
		users: users,
	}
}

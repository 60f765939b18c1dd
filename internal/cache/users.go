package cache

import (
	"fmt"
	"strings"

	"myzone/internal/models"
)

const (
	UserIDKey   = "id:%d"
	UsernameKey = "username:%s"
)

func updateUserCache(c *Cache, user *models.User) {
	u := *user
	c.users.Add(fmt.Sprintf(UserIDKey, u.ID), &u)
	c.users.Add(fmt.Sprintf(UsernameKey, strings.ToLower(u.Username)), &u)
}

func (c *Cache) GetUserByID(userID uint) (user models.User, ok bool) {
	key := fmt.Sprintf(UserIDKey, userID)
	userP, ok := c.users.Get(key)
	if ok {
		return *userP, true
	}

	err := c.db.First(&user, userID).Error
	if err != nil {
		return user, false
	}

	updateUserCache(c, &user)
	return user, true
}

func (c *Cache) GetUserByUsername(username string) (user models.User, ok bool) {
	name := strings.ToLower(username)
	key := fmt.Sprintf(UsernameKey, name)
	userP, ok := c.users.Get(key)
	if ok {
		return *userP, true
	}

	err := c.db.Where("LOWER(username) = ?", name).First(&user).Error
	if err != nil {
		return user, false
	}

	updateUserCache(c, &user)
	return user, true
}

func (c *Cache) CreateUser(user *models.User) error {
	err := c.db.Create(user).Error
	if err != nil {
		return err
	}

	updateUserCache(c, user)
	return nil
}

func (c *Cache) UpdateUser(user *models.User) error {
	err := c.db.Save(user).Error
	if err != nil {
		return err
	}

	updateUserCache(c, user)
	return nil
}

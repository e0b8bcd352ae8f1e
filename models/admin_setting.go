package models

import (
	"context"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
)

type AdminSetting struct {
	tableName struct{} `pg:"admin_settings"`

	ID           uuid.UUID `pg:"admin_setting_id,pk,type:uuid,default:uuid_generate_v4()"`
	SettingKey   string    `pg:"setting_key,notnull,unique"`
	SettingValue *string   `pg:"setting_value"`
	CreatedAt    time.Time `pg:"created_at,default:now()"`
	UpdatedAt    time.Time `pg:"updated_at,default:now()"`
}

func (s *AdminSetting) StringValue() string {
	if s.SettingValue == nil {
		return ""
	}
	return *s.SettingValue
}

// GetAdminSettings returns settings with the given keys. Missing keys are simply absent.
func GetAdminSettings(ctx context.Context, db *pg.DB, keys []string) ([]*AdminSetting, error) {
	var settings []*AdminSetting
	if len(keys) == 0 {
		return settings, nil
	}
	err := db.Model(&settings).
		Context(ctx).
		Where("setting_key IN (?)", pg.In(keys)).
		Select()
	if err != nil {
		return nil, err
	}
	return settings, nil
}

// GetAdminSettingsByPrefix returns settings whose key starts with prefix, newest first.
func GetAdminSettingsByPrefix(ctx context.Context, db *pg.DB, prefix string) ([]*AdminSetting, error) {
	var settings []*AdminSetting
	err := db.Model(&settings).
		Context(ctx).
		Where("setting_key LIKE ?", prefix+"%").
		Order("created_at DESC").
		Select()
	if err != nil {
		return nil, err
	}
	return settings, nil
}

func UpsertAdminSetting(ctx context.Context, db *pg.DB, key, value string) error {
	s := &AdminSetting{
		SettingKey:   key,
		SettingValue: &value,
	}
	_, err := db.Model(s).
		Context(ctx).
		OnConflict("(setting_key) DO UPDATE").
		Set("setting_value = EXCLUDED.setting_value, updated_at = now()").
		Insert()
	return err
}

// InsertAdminSetting fails when the key already exists.
func InsertAdminSetting(ctx context.Context, db *pg.DB, key, value string) error {
	s := &AdminSetting{
		SettingKey:   key,
		SettingValue: &value,
	}
	_, err := db.Model(s).
		Context(ctx).
		Insert()
	if err != nil {
		return errors.Wrapf(err, "failed to insert setting %v", key)
	}
	return nil
}

package migrations

import (
	"github.com/filoflix/web-ui/models"
	"github.com/go-pg/migrations/v8"
	log "github.com/sirupsen/logrus"
)

// NormalizeEpisodeEmbedCode rewrites stored episode arrays so every episode carries
// embed_code. Older rows keep the reference under video_url and numbers as strings.
func NormalizeEpisodeEmbedCode(col *migrations.Collection) {
	col.MustRegisterTx(func(db migrations.DB) error {
		var items []*models.Content

		err := db.Model(&items).
			Where("type = ?", models.ContentTypeSeries).
			Where("video_url LIKE '[%'").
			Select()
		if err != nil {
			return err
		}
		for _, item := range items {
			eps, ok := models.ParseEpisodes(item.VideoURL)
			if !ok {
				log.WithField("id", item.ID).Warn("skipping series with unparsable episodes")
				continue
			}
			raw, err := models.MarshalEpisodes(eps)
			if err != nil {
				return err
			}
			if raw == item.VideoURL {
				continue
			}
			item.VideoURL = raw
			_, err = db.Model(item).WherePK().Column("video_url").Update()
			if err != nil {
				return err
			}
		}
		return nil
	}, func(db migrations.DB) error {
		return nil
	})
}

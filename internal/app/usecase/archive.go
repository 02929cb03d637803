package usecase

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"

	"github.com/supchaser/postergen/internal/app/models"
	"github.com/supchaser/postergen/internal/app/relay"
	"github.com/supchaser/postergen/internal/utils/errs"
	"github.com/supchaser/postergen/internal/utils/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const archiveFetchConcurrency = 4

// BuildArchive downloads the selected artifacts through the relay and packs
// them into one zip. Artifacts that fail to download are skipped; the call
// fails only when nothing could be packed.
func (u *GenerationUsecase) BuildArchive(ctx context.Context) (*models.Archive, error) {
	const funcName = "GenerationUsecase.BuildArchive"

	urls := u.tracker.Selected()
	if len(urls) == 0 {
		return nil, errs.ErrEmptySelection
	}

	logger.Info("building archive",
		zap.String("function", funcName),
		zap.Int("selected", len(urls)),
	)

	images := make([]*models.Image, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(archiveFetchConcurrency)
	for i, url := range urls {
		g.Go(func() error {
			img, err := u.relay.Fetch(gctx, url)
			if err != nil {
				logger.Warn("failed to download artifact",
					zap.String("function", funcName),
					zap.String("url", url),
					zap.Error(err),
				)
				return nil
			}
			images[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stamp := u.now().UnixMilli()
	var buf bytes.Buffer
	zipWriter := zip.NewWriter(&buf)

	successCount := 0
	for i, img := range images {
		if img == nil {
			continue
		}

		fileName := fmt.Sprintf("poster-%d-%d%s", i+1, stamp, relay.FileExt(img.ContentType))
		fileWriter, err := zipWriter.Create(fileName)
		if err != nil {
			logger.Warn("failed to create file in archive",
				zap.String("function", funcName),
				zap.String("file_name", fileName),
				zap.Error(err),
			)
			continue
		}
		if _, err := fileWriter.Write(img.Data); err != nil {
			logger.Warn("failed to write file to archive",
				zap.String("function", funcName),
				zap.String("file_name", fileName),
				zap.Error(err),
			)
			continue
		}
		successCount++
	}

	if err := zipWriter.Close(); err != nil {
		return nil, fmt.Errorf("closing archive: %w", err)
	}

	if successCount == 0 {
		logger.Error("no files were added to archive",
			zap.String("function", funcName),
		)
		return nil, fmt.Errorf("%w: none of %d selected artifacts could be downloaded", errs.ErrArtifactLoad, len(urls))
	}

	logger.Info("archive built",
		zap.String("function", funcName),
		zap.Int("files_processed", successCount),
		zap.Int("total_files", len(urls)),
		zap.Int("bytes", buf.Len()),
	)

	return &models.Archive{
		Name:      fmt.Sprintf("posters-%d.zip", stamp),
		Data:      buf.Bytes(),
		FileCount: successCount,
	}, nil
}

package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/vfg2006/ad-manager-api/internal/config"
	"github.com/vfg2006/ad-manager-api/pkg/utils"
)

// Extensões de imagem aceitas para criativos de anúncio
var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ImageUploader grava criativos de anúncios no disco local e devolve a
// URL pública correspondente
type ImageUploader struct {
	dir        string
	maxBytes   int64
	publicPath string
}

func NewImageUploader(cfg config.Upload) *ImageUploader {
	return &ImageUploader{
		dir:        cfg.Dir,
		maxBytes:   cfg.MaxSizeMB * 1024 * 1024,
		publicPath: cfg.PublicPath,
	}
}

// MaxBytes retorna o tamanho máximo aceito para o corpo do upload
func (u *ImageUploader) MaxBytes() int64 {
	return u.maxBytes
}

// Save valida e persiste a imagem, retornando a URL pública do arquivo
func (u *ImageUploader) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size > u.maxBytes {
		return "", fmt.Errorf("arquivo excede o tamanho máximo de %d bytes", u.maxBytes)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExtensions[ext] {
		return "", fmt.Errorf("extensão de arquivo não permitida: %s", ext)
	}

	id, err := utils.GenerateID()
	if err != nil {
		return "", fmt.Errorf("erro ao gerar nome do arquivo: %w", err)
	}

	if err := os.MkdirAll(u.dir, 0o755); err != nil {
		return "", fmt.Errorf("erro ao criar diretório de upload: %w", err)
	}

	filename := id + ext
	dst, err := os.Create(filepath.Join(u.dir, filename))
	if err != nil {
		return "", fmt.Errorf("erro ao criar arquivo: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(file, u.maxBytes)); err != nil {
		return "", fmt.Errorf("erro ao gravar arquivo: %w", err)
	}

	return u.publicPath + "/" + filename, nil
}

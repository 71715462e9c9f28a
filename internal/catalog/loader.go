// Package catalog scans the on-disk product tree into domain products.
//
// Layout under the root:
//
//	productos/<brand>/<stem>/info.{json,yaml,yml}
//	productos/<brand>/<stem>/fotos/*.{jpg,jpeg,png,webp}
//	logos/<brand>.<ext>
package catalog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
	"gopkg.in/yaml.v3"

	"ponsiv/internal/domain"
	applog "ponsiv/internal/log"
)

const (
	ProductsDir = "productos"
	LogosDir    = "logos"
	PhotosDir   = "fotos"
)

var (
	imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}
	infoFiles = []string{"info.json", "info.yaml", "info.yml"}
)

// info is the per-product metadata file.
type info struct {
	Nombre    *string          `json:"nombre" yaml:"nombre"`
	Marca     *string          `json:"marca" yaml:"marca"`
	Precio    *decimal.Decimal `json:"precio" yaml:"-"`
	PrecioRaw *string          `json:"-" yaml:"precio"`
	Tallas    []string         `json:"tallas" yaml:"tallas"`
	Categoria *string          `json:"categoria" yaml:"categoria"`
}

// Loader scans Root once and serves the cached result afterwards.
// A failed scan is not cached.
type Loader struct {
	Root string

	mu       sync.Mutex
	products []domain.Product
	loaded   bool
	group    singleflight.Group
}

func NewLoader(root string) *Loader { return &Loader{Root: root} }

// Products returns the catalog, scanning on first use. Concurrent first
// callers share a single scan.
func (l *Loader) Products(ctx context.Context) ([]domain.Product, error) {
	if ps, ok := l.cached(); ok {
		return ps, nil
	}
	ch := l.group.DoChan("scan", func() (any, error) {
		if ps, ok := l.cached(); ok {
			return ps, nil
		}
		ps, err := Scan(l.Root)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.products, l.loaded = ps, true
		l.mu.Unlock()
		applog.L().Info().Str("action", "catalog.loaded").Int("products", len(ps)).Str("root", l.Root).Send()
		return ps, nil
	})
	select {
	case <-ctx.Done():
		return nil, domain.Wrap(domain.ErrCancelled, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return clone(res.Val.([]domain.Product)), nil
	}
}

func (l *Loader) cached() ([]domain.Product, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.loaded {
		return nil, false
	}
	return clone(l.products), true
}

// clone deep-copies ps so callers cannot reach the cached slices or pointers.
func clone(ps []domain.Product) []domain.Product {
	out := make([]domain.Product, len(ps))
	for i, p := range ps {
		p.Sizes = append([]string{}, p.Sizes...)
		p.ImagePaths = append([]string{}, p.ImagePaths...)
		if p.LogoPath != nil {
			v := *p.LogoPath
			p.LogoPath = &v
		}
		if p.Category != nil {
			v := *p.Category
			p.Category = &v
		}
		out[i] = p
	}
	return out
}

// Scan walks root without caching. A missing product tree fails with
// ErrDecodingFailed; products with missing or malformed metadata are skipped.
func Scan(root string) ([]domain.Product, error) {
	productsRoot := filepath.Join(root, ProductsDir)
	brandDirs, err := os.ReadDir(productsRoot)
	if err != nil {
		return nil, domain.Wrap(domain.ErrDecodingFailed, errors.Wrapf(err, "read catalog %s", productsRoot))
	}
	logos := loadLogos(root)

	products := []domain.Product{}
	for _, bd := range brandDirs {
		if !bd.IsDir() || hidden(bd.Name()) {
			continue
		}
		folder := bd.Name()
		productDirs, err := os.ReadDir(filepath.Join(productsRoot, folder))
		if err != nil {
			applog.L().Warn().Err(err).Str("brand", folder).Msg("skipping unreadable brand folder")
			continue
		}
		for _, pd := range productDirs {
			if !pd.IsDir() || hidden(pd.Name()) {
				continue
			}
			p, err := loadProduct(root, folder, pd.Name(), logos)
			if err != nil {
				applog.L().Warn().Err(err).Str("brand", folder).Str("product", pd.Name()).Msg("skipping catalog entry")
				continue
			}
			products = append(products, p)
		}
	}

	sort.SliceStable(products, func(i, j int) bool {
		a, b := products[i], products[j]
		if c := compareFold(a.Brand, b.Brand); c != 0 {
			return c < 0
		}
		if c := compareFold(a.Title, b.Title); c != 0 {
			return c < 0
		}
		return a.ID < b.ID
	})
	return products, nil
}

func loadProduct(root, folder, stem string, logos map[string]string) (domain.Product, error) {
	dir := filepath.Join(root, ProductsDir, folder, stem)
	meta, err := readInfo(dir)
	if err != nil {
		return domain.Product{}, err
	}

	p := domain.Product{
		ID:         stem,
		Brand:      folder,
		Title:      stem,
		Price:      decimal.Zero,
		Sizes:      []string{},
		ImagePaths: imagePaths(root, dir),
		Category:   meta.Categoria,
	}
	if meta.Marca != nil && strings.TrimSpace(*meta.Marca) != "" {
		p.Brand = *meta.Marca
	}
	if meta.Nombre != nil && strings.TrimSpace(*meta.Nombre) != "" {
		p.Title = *meta.Nombre
	}
	if meta.Precio != nil {
		p.Price = *meta.Precio
	}
	if meta.Tallas != nil {
		p.Sizes = meta.Tallas
	}
	if logo, ok := logos[p.Brand]; ok {
		p.LogoPath = &logo
	} else if logo, ok := logos[folder]; ok {
		p.LogoPath = &logo
	}
	return p, nil
}

func readInfo(dir string) (info, error) {
	for _, name := range infoFiles {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return info{}, errors.Wrapf(err, "read %s", path)
		}
		var meta info
		if filepath.Ext(name) == ".json" {
			err = json.Unmarshal(data, &meta)
		} else {
			err = decodeYAML(data, &meta)
		}
		if err != nil {
			return info{}, errors.Wrapf(err, "parse %s", path)
		}
		return meta, nil
	}
	return info{}, errors.New("no info file")
}

func decodeYAML(data []byte, meta *info) error {
	if err := yaml.Unmarshal(data, meta); err != nil {
		return err
	}
	if meta.PrecioRaw != nil {
		d, err := decimal.NewFromString(strings.TrimSpace(*meta.PrecioRaw))
		if err != nil {
			return errors.Wrap(err, "precio")
		}
		meta.Precio = &d
	}
	return nil
}

// imagePaths lists the photos of a product relative to root, sorted by name.
func imagePaths(root, productDir string) []string {
	entries, err := os.ReadDir(filepath.Join(productDir, PhotosDir))
	if err != nil {
		return []string{}
	}
	names := []string{}
	for _, e := range entries {
		if e.IsDir() || hidden(e.Name()) {
			continue
		}
		if imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			names = append(names, e.Name())
		}
	}
	sort.SliceStable(names, func(i, j int) bool {
		if c := compareFold(names[i], names[j]); c != 0 {
			return c < 0
		}
		return names[i] < names[j]
	})
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, relative(root, filepath.Join(productDir, PhotosDir, n)))
	}
	return out
}

// loadLogos maps file stem -> relative path for every image in logos/.
func loadLogos(root string) map[string]string {
	m := map[string]string{}
	entries, err := os.ReadDir(filepath.Join(root, LogosDir))
	if err != nil {
		return m
	}
	for _, e := range entries {
		if e.IsDir() || hidden(e.Name()) {
			continue
		}
		ext := filepath.Ext(e.Name())
		if !imageExts[strings.ToLower(ext)] {
			continue
		}
		m[strings.TrimSuffix(e.Name(), ext)] = relative(root, filepath.Join(root, LogosDir, e.Name()))
	}
	return m
}

func relative(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func hidden(name string) bool { return strings.HasPrefix(name, ".") }

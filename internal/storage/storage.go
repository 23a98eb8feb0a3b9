package storage

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

// クラウドストレージ側でエンティティが見つからない
var ErrNotFound = errors.New("not found")

// カタログ商品の保存先（key-attributeストア）。
type ProductStore interface {
	CreateProduct(ctx context.Context, p model.Product) (model.Product, error)
	GetProduct(ctx context.Context, productID string) (model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	ListProductsByCategory(ctx context.Context, category string) ([]model.Product, error)
	UpdateProduct(ctx context.Context, p model.Product) error
	DeleteProduct(ctx context.Context, productID string) error
}

// 顧客プロフィール文書の保存先。リレーショナル側Customerとは独立。
type ProfileStore interface {
	CreateProfile(ctx context.Context, p model.CustomerProfile) (model.CustomerProfile, error)
	GetProfile(ctx context.Context, profileID string) (model.CustomerProfile, error)
	ListProfiles(ctx context.Context) ([]model.CustomerProfile, error)
	UpdateProfile(ctx context.Context, p model.CustomerProfile) error
	DeleteProfile(ctx context.Context, profileID string) error
}

// バイナリメディアの保存先。
// blob名は"<kind>/<uuid>_<fileName>"。戻り値はblobのURL。
type BlobStore interface {
	UploadImage(ctx context.Context, fileName string, data []byte, contentType string) (string, error)
	UploadVideo(ctx context.Context, fileName string, data []byte, contentType string) (string, error)
	UploadDocument(ctx context.Context, fileName string, data []byte, contentType string) (string, error)
	Download(ctx context.Context, blobURL string) ([]byte, error)
	ListURLs(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, blobURL string) error
}

// 永続キュー。ReceiveOneは読み取り直後に削除する（at-most-once、再配達なし）。
type QueueStore interface {
	Send(ctx context.Context, queueName string, payload []byte) error
	ReceiveOne(ctx context.Context, queueName string) ([]byte, bool, error)
	Peek(ctx context.Context, queueName string, max int) ([][]byte, error)
	Clear(ctx context.Context, queueName string) error
}

// 契約書ファイルの保存先（階層ファイル共有）。
type FileStore interface {
	Upload(ctx context.Context, fileName string, data []byte) (string, error)
	Download(ctx context.Context, fileName string) ([]byte, error)
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, fileName string) error
}

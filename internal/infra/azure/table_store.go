package azure

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"app/internal/domain/model"
	"app/internal/storage"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	"github.com/google/uuid"
)

const (
	productTableName = "Products"
	profileTableName = "CustomerProfiles"

	productPartition = "Product"
	profilePartition = "Customer"
)

// Table Storage実装。storage.ProductStoreとstorage.ProfileStoreを満たす。
type TableStore struct {
	svc *aztables.ServiceClient
}

func NewTableStore(connectionString string) (*TableStore, error) {
	svc, err := aztables.NewServiceClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, err
	}
	return &TableStore{svc: svc}, nil
}

// テーブルが無ければ作る（既存なら成功扱い）
func (s *TableStore) ensureTable(ctx context.Context, name string) error {
	_, err := s.svc.CreateTable(ctx, name, nil)
	if isStatus(err, http.StatusConflict) {
		return nil
	}
	return err
}

func isStatus(err error, status int) bool {
	var respErr *azcore.ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == status
}

// ===================== Product =====================

// 型付きデコード用。歴史的に型が揺れているフィールドはフォールバック側で拾う。
type productEntity struct {
	aztables.Entity
	ProductName   string               `json:"ProductName"`
	Description   string               `json:"Description"`
	Price         float64              `json:"Price"`
	StockQuantity int32                `json:"StockQuantity"`
	Category      string               `json:"Category"`
	ImageUrl      string               `json:"ImageUrl"`
	IsAvailable   bool                 `json:"IsAvailable"`
	CreatedDate   aztables.EDMDateTime `json:"CreatedDate"`
}

func (s *TableStore) CreateProduct(ctx context.Context, p model.Product) (model.Product, error) {
	if err := s.ensureTable(ctx, productTableName); err != nil {
		return model.Product{}, err
	}

	p.ID = uuid.NewString()

	ent := aztables.EDMEntity{
		Entity: aztables.Entity{PartitionKey: productPartition, RowKey: p.ID},
		Properties: map[string]any{
			"ProductName":   p.ProductName,
			"Description":   p.Description,
			"Price":         p.Price,
			"StockQuantity": int32(p.StockQuantity),
			"Category":      p.Category,
			"ImageUrl":      p.ImageURL,
			"IsAvailable":   p.IsAvailable,
			"CreatedDate":   aztables.EDMDateTime(p.CreatedDate),
		},
	}

	b, err := json.Marshal(ent)
	if err != nil {
		return model.Product{}, err
	}

	client := s.svc.NewClient(productTableName)
	if _, err := client.AddEntity(ctx, b, nil); err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (s *TableStore) GetProduct(ctx context.Context, productID string) (model.Product, error) {
	client := s.svc.NewClient(productTableName)

	resp, err := client.GetEntity(ctx, productPartition, productID, nil)
	if isStatus(err, http.StatusNotFound) {
		return model.Product{}, storage.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}

	return decodeProduct(resp.Value)
}

func (s *TableStore) ListProducts(ctx context.Context) ([]model.Product, error) {
	client := s.svc.NewClient(productTableName)

	filter := "PartitionKey eq '" + productPartition + "'"
	pager := client.NewListEntitiesPager(&aztables.ListEntitiesOptions{Filter: &filter})

	products := []model.Product{}
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range resp.Entities {
			p, err := decodeProduct(raw)
			if err != nil {
				return nil, err
			}
			products = append(products, p)
		}
	}
	return products, nil
}

// カテゴリ絞り込み。型揺れのあるレコードも拾うため絞り込みはデコード後に行う。
func (s *TableStore) ListProductsByCategory(ctx context.Context, category string) ([]model.Product, error) {
	all, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	products := []model.Product{}
	for _, p := range all {
		if p.Category == category {
			products = append(products, p)
		}
	}
	return products, nil
}

func (s *TableStore) UpdateProduct(ctx context.Context, p model.Product) error {
	ent := aztables.EDMEntity{
		Entity: aztables.Entity{PartitionKey: productPartition, RowKey: p.ID},
		Properties: map[string]any{
			"ProductName":   p.ProductName,
			"Description":   p.Description,
			"Price":         p.Price,
			"StockQuantity": int32(p.StockQuantity),
			"Category":      p.Category,
			"ImageUrl":      p.ImageURL,
			"IsAvailable":   p.IsAvailable,
			"CreatedDate":   aztables.EDMDateTime(p.CreatedDate),
		},
	}

	b, err := json.Marshal(ent)
	if err != nil {
		return err
	}

	client := s.svc.NewClient(productTableName)
	_, err = client.UpdateEntity(ctx, b, &aztables.UpdateEntityOptions{UpdateMode: aztables.UpdateModeReplace})
	if isStatus(err, http.StatusNotFound) {
		return storage.ErrNotFound
	}
	return err
}

func (s *TableStore) DeleteProduct(ctx context.Context, productID string) error {
	client := s.svc.NewClient(productTableName)
	_, err := client.DeleteEntity(ctx, productPartition, productID, nil)
	if isStatus(err, http.StatusNotFound) {
		return storage.ErrNotFound
	}
	return err
}

// 型付きデコードを試し、ダメなら属性マップ経由で1フィールドずつ寄せる。
func decodeProduct(raw []byte) (model.Product, error) {
	var ent productEntity
	if err := json.Unmarshal(raw, &ent); err == nil {
		return model.Product{
			ID:            ent.RowKey,
			ProductName:   ent.ProductName,
			Description:   ent.Description,
			Price:         ent.Price,
			StockQuantity: int(ent.StockQuantity),
			Category:      ent.Category,
			ImageURL:      ent.ImageUrl,
			IsAvailable:   ent.IsAvailable,
			CreatedDate:   time.Time(ent.CreatedDate),
		}, nil
	}

	var edm aztables.EDMEntity
	if err := json.Unmarshal(raw, &edm); err != nil {
		return model.Product{}, err
	}
	return productFromProperties(edm.RowKey, edm.Properties), nil
}

// 属性マップからの寄せ変換。壊れた値・欠けた値はゼロ値のまま。
func productFromProperties(rowKey string, props map[string]any) model.Product {
	return model.Product{
		ID:            rowKey,
		ProductName:   coerceString(props["ProductName"]),
		Description:   coerceString(props["Description"]),
		Price:         coerceFloat(props["Price"]),
		StockQuantity: coerceInt(props["StockQuantity"]),
		Category:      coerceString(props["Category"]),
		ImageURL:      coerceString(props["ImageUrl"]),
		IsAvailable:   coerceBool(props["IsAvailable"]),
		CreatedDate:   coerceTime(props["CreatedDate"]),
	}
}

// ===================== CustomerProfile =====================

type profileEntity struct {
	aztables.Entity
	FirstName   string               `json:"FirstName"`
	LastName    string               `json:"LastName"`
	Email       string               `json:"Email"`
	PhoneNumber string               `json:"PhoneNumber"`
	Address     string               `json:"Address"`
	IsActive    bool                 `json:"IsActive"`
	CreatedDate aztables.EDMDateTime `json:"CreatedDate"`
}

func (s *TableStore) CreateProfile(ctx context.Context, p model.CustomerProfile) (model.CustomerProfile, error) {
	if err := s.ensureTable(ctx, profileTableName); err != nil {
		return model.CustomerProfile{}, err
	}

	p.ID = uuid.NewString()

	b, err := json.Marshal(profileToEntity(p))
	if err != nil {
		return model.CustomerProfile{}, err
	}

	client := s.svc.NewClient(profileTableName)
	if _, err := client.AddEntity(ctx, b, nil); err != nil {
		return model.CustomerProfile{}, err
	}
	return p, nil
}

func (s *TableStore) GetProfile(ctx context.Context, profileID string) (model.CustomerProfile, error) {
	client := s.svc.NewClient(profileTableName)

	resp, err := client.GetEntity(ctx, profilePartition, profileID, nil)
	if isStatus(err, http.StatusNotFound) {
		return model.CustomerProfile{}, storage.ErrNotFound
	}
	if err != nil {
		return model.CustomerProfile{}, err
	}

	return decodeProfile(resp.Value)
}

func (s *TableStore) ListProfiles(ctx context.Context) ([]model.CustomerProfile, error) {
	client := s.svc.NewClient(profileTableName)

	filter := "PartitionKey eq '" + profilePartition + "'"
	pager := client.NewListEntitiesPager(&aztables.ListEntitiesOptions{Filter: &filter})

	profiles := []model.CustomerProfile{}
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range resp.Entities {
			p, err := decodeProfile(raw)
			if err != nil {
				return nil, err
			}
			profiles = append(profiles, p)
		}
	}
	return profiles, nil
}

func (s *TableStore) UpdateProfile(ctx context.Context, p model.CustomerProfile) error {
	b, err := json.Marshal(profileToEntity(p))
	if err != nil {
		return err
	}

	client := s.svc.NewClient(profileTableName)
	_, err = client.UpdateEntity(ctx, b, &aztables.UpdateEntityOptions{UpdateMode: aztables.UpdateModeReplace})
	if isStatus(err, http.StatusNotFound) {
		return storage.ErrNotFound
	}
	return err
}

func (s *TableStore) DeleteProfile(ctx context.Context, profileID string) error {
	client := s.svc.NewClient(profileTableName)
	_, err := client.DeleteEntity(ctx, profilePartition, profileID, nil)
	if isStatus(err, http.StatusNotFound) {
		return storage.ErrNotFound
	}
	return err
}

func profileToEntity(p model.CustomerProfile) aztables.EDMEntity {
	return aztables.EDMEntity{
		Entity: aztables.Entity{PartitionKey: profilePartition, RowKey: p.ID},
		Properties: map[string]any{
			"FirstName":   p.FirstName,
			"LastName":    p.LastName,
			"Email":       p.Email,
			"PhoneNumber": p.PhoneNumber,
			"Address":     p.Address,
			"IsActive":    p.IsActive,
			"CreatedDate": aztables.EDMDateTime(p.CreatedDate),
		},
	}
}

func decodeProfile(raw []byte) (model.CustomerProfile, error) {
	var ent profileEntity
	if err := json.Unmarshal(raw, &ent); err == nil {
		return model.CustomerProfile{
			ID:          ent.RowKey,
			FirstName:   ent.FirstName,
			LastName:    ent.LastName,
			Email:       ent.Email,
			PhoneNumber: ent.PhoneNumber,
			Address:     ent.Address,
			IsActive:    ent.IsActive,
			CreatedDate: time.Time(ent.CreatedDate),
		}, nil
	}

	var edm aztables.EDMEntity
	if err := json.Unmarshal(raw, &edm); err != nil {
		return model.CustomerProfile{}, err
	}

	return model.CustomerProfile{
		ID:          edm.RowKey,
		FirstName:   coerceString(edm.Properties["FirstName"]),
		LastName:    coerceString(edm.Properties["LastName"]),
		Email:       coerceString(edm.Properties["Email"]),
		PhoneNumber: coerceString(edm.Properties["PhoneNumber"]),
		Address:     coerceString(edm.Properties["Address"]),
		IsActive:    coerceBool(edm.Properties["IsActive"]),
		CreatedDate: coerceTime(edm.Properties["CreatedDate"]),
	}, nil
}

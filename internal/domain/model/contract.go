package model

import "time"

// 契約書のメタデータ。実ファイルはFile Share側に置く。
type Contract struct {
	ContractID   string     `json:"contract_id"`
	ContractName string     `json:"contract_name"`
	CustomerID   string     `json:"customer_id"`
	ContractType string     `json:"contract_type"`
	CreatedDate  time.Time  `json:"created_date"`
	ExpiryDate   *time.Time `json:"expiry_date"`
	Status       string     `json:"status"`
	FilePath     string     `json:"file_path"`
}

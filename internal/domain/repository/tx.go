package repository

// TxRepositories agrupa los repositorios atados a una misma transacción.
// Todo lo escrito a través de ellos se confirma o se revierte junto.
type TxRepositories struct {
	Products   ProductRepository
	Units      InventoryUnitRepository
	Ledger     StockLedgerRepository
	Discounts  DiscountRepository
	Orders     OrderRepository
	MasterData MasterDataRepository
}

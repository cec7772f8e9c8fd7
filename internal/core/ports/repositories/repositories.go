package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// Inside WithinTx every field is bound to the same transaction.
type RepositoryProvider struct {
	LootRepo           LootRepositoryFacade
	LedgerRepo         LedgerRepositoryFacade
	ConsumableRepo     ConsumableRepositoryFacade
	SaleRepo           SaleRepositoryFacade
	IdentificationRepo IdentificationRepositoryFacade
	CharacterRepo      CharacterReader
	CatalogRepo        CatalogReader
	CalendarRepo       CalendarReader
}

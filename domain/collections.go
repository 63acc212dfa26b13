package domain

const (
	CollectionUser = "system_auth_users"
)

const (
	CollectionCatalogAnime = "catalog_anime"
)

// Package derive turns raw backend collections (products, orders, comments)
// into the view-ready aggregates served to the storefront and dashboards.
//
// Every function here is pure apart from Recommend, which reads the catalog
// through a CatalogSource. Nothing is cached; callers recompute on each fetch.
package derive

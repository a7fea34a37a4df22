// Package dataset holds the static data behind a scrollplot figure.
//
// A [Store] maps a category name (e.g. "Engineering") to a [Series]: one
// [Point] per year, starting at the store's start year. Point A is plotted on
// the x axis and point B on the y axis; in the bundled examples A counts women
// and B counts men.
//
// Every series in a store spans the same years, so for a store starting in
// 1990 with 27 points per series, index i is year 1990+i and the last year is
// 2016. The store is read-only once built and safe to share between
// goroutines.
//
// Stores are loaded from JSON or YAML:
//
//	{
//	  "start_year": 1990,
//	  "categories": {
//	    "Engineering": [[10, 5], [12, 6], [15, 20]]
//	  }
//	}
//
// [Store.Lookup] fails with a CATEGORY_NOT_FOUND error for unknown names.
// Stories validate their categories against the store up front, so renderers
// never hit that error at draw time.
package dataset

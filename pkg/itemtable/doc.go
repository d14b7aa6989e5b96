// Package itemtable manages the repeating item rows of a transactional form:
// ordered rows of item code, quantity, and rate, with item-master and
// price-list lookups filling in descriptions and rates, and a derived amount
// per row. Rows are value objects; every mutation replaces the slice instead
// of editing in place, so snapshots handed to renderers stay stable.
package itemtable

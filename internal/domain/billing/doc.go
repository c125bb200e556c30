// Package billing holds the domain entities of the renewable-energy billing
// ledger: production sites, the purchase contracts signed on them, and the
// invoices issued under each contract. It also declares the repository,
// unit-of-work and service contracts implemented by the infrastructure and
// application layers.
package billing

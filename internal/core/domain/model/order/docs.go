// Package order contains the Order aggregate: one package delivery request
// from a student to a destination building, tracked through the forward-only
// status machine Pending -> Assigned -> Delivering -> Delivered ->
// {PickedUp, Cancelled}, together with the single-use handoff token that
// proves legitimate possession at pickup time.
package order

// Package common holds the Graph API pieces shared by every Meta product
// package: the error object and its classifier, the endpoint contract with
// its three-way parse result, outcomes, request rendering and paging.
package common

package client

// The fixed set of backend RPC methods the gateway may invoke. The dispatch
// table maps each HTTP route to exactly one of these names.
const (
	MethodListAuthors     = "ListAuthors"
	MethodCreateAuthor    = "CreateAuthor"
	MethodListGenres      = "ListGenres"
	MethodCreateGenre     = "CreateGenre"
	MethodListBooks       = "ListBooks"
	MethodCreateBook      = "CreateBook"
	MethodUpdateBook      = "UpdateBook"
	MethodAddBookCopy     = "AddBookCopy"
	MethodListBookCopies  = "ListBookCopies"
	MethodListMembers     = "ListMembers"
	MethodCreateMember    = "CreateMember"
	MethodUpdateMember    = "UpdateMember"
	MethodListAllLoans    = "ListAllLoans"
	MethodListMemberLoans = "ListMemberLoans"
	MethodBorrowBook      = "BorrowBook"
	MethodReturnBook      = "ReturnBook"
)

// Methods lists every RPC method name, in contract order. The proto loader
// verifies each one resolves against the parsed service definition.
var Methods = []string{
	MethodListAuthors,
	MethodCreateAuthor,
	MethodListGenres,
	MethodCreateGenre,
	MethodListBooks,
	MethodCreateBook,
	MethodUpdateBook,
	MethodAddBookCopy,
	MethodListBookCopies,
	MethodListMembers,
	MethodCreateMember,
	MethodUpdateMember,
	MethodListAllLoans,
	MethodListMemberLoans,
	MethodBorrowBook,
	MethodReturnBook,
}

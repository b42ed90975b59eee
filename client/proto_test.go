package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testProtoPath = "../proto/library.proto"

func TestLoadContractResolvesAllMethods(t *testing.T) {
	contract, err := LoadContract(testProtoPath)
	require.NoError(t, err)

	for _, name := range Methods {
		md, ok := contract.Method(name)
		assert.True(t, ok, "method %s missing from contract", name)
		require.NotNil(t, md)
		assert.Equal(t, name, md.GetName())
	}
}

func TestLoadContractUnknownMethod(t *testing.T) {
	contract, err := LoadContract(testProtoPath)
	require.NoError(t, err)

	_, ok := contract.Method("DeleteBook")
	assert.False(t, ok)
}

func TestLoadContractMissingFile(t *testing.T) {
	_, err := LoadContract("../proto/nope.proto")
	assert.Error(t, err)
}

func TestListRequestsCarryPagination(t *testing.T) {
	contract, err := LoadContract(testProtoPath)
	require.NoError(t, err)

	for _, name := range []string{
		MethodListAuthors, MethodListGenres, MethodListBooks,
		MethodListBookCopies, MethodListMembers, MethodListAllLoans,
		MethodListMemberLoans,
	} {
		md, ok := contract.Method(name)
		require.True(t, ok)
		in := md.GetInputType()
		assert.NotNil(t, in.FindFieldByName("page"), "%s request lacks page", name)
		assert.NotNil(t, in.FindFieldByName("limit"), "%s request lacks limit", name)
		out := md.GetOutputType()
		assert.NotNil(t, out.FindFieldByName("total_count"), "%s response lacks total_count", name)
		assert.NotNil(t, out.FindFieldByName("total_pages"), "%s response lacks total_pages", name)
	}
}

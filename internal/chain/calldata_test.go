package chain

import (
	"encoding/hex"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testFrom = common.HexToAddress("0x1111111111111111111111111111111111111111")
	testTo   = common.HexToAddress("0x000000000000000000000000000000000000dEaD")
)

func TestEncodeERC20Transfer(t *testing.T) {
	data := EncodeERC20Transfer(testTo, uint256.NewInt(1000))
	require.Len(t, data, 4+2*32)
	assert.Equal(t, "a9059cbb", hex.EncodeToString(data[:4]))
	// to address right-aligned in word 1
	assert.Equal(t, testTo.Bytes(), data[4+12:4+32])
	// amount in word 2
	assert.Equal(t, "00000000000000000000000000000000000000000000000000000000000003e8",
		hex.EncodeToString(data[4+32:]))
}

func TestEncodeERC721Transfer(t *testing.T) {
	data := EncodeERC721Transfer(testFrom, testTo, uint256.NewInt(7))
	require.Len(t, data, 4+3*32)
	assert.Equal(t, "42842e0e", hex.EncodeToString(data[:4]))
	assert.Equal(t, testFrom.Bytes(), data[4+12:4+32])
	assert.Equal(t, testTo.Bytes(), data[4+32+12:4+64])
	assert.EqualValues(t, 7, data[len(data)-1])
}

func TestEncodeERC1155Transfer(t *testing.T) {
	data := EncodeERC1155Transfer(testFrom, testTo, uint256.NewInt(7), uint256.NewInt(3))
	require.Len(t, data, 4+6*32)
	assert.Equal(t, "f242432a", hex.EncodeToString(data[:4]))

	words := data[4:]
	word := func(i int) []byte { return words[i*32 : (i+1)*32] }
	assert.Equal(t, testFrom.Bytes(), word(0)[12:])
	assert.Equal(t, testTo.Bytes(), word(1)[12:])
	assert.EqualValues(t, 7, word(2)[31])
	assert.EqualValues(t, 3, word(3)[31])
	// dynamic bytes head points past the five head words, payload is empty
	assert.EqualValues(t, 5*32, word(4)[31])
	assert.EqualValues(t, 0, word(5)[31])
}

func TestEncodeBalanceOf(t *testing.T) {
	data := EncodeBalanceOf(testFrom)
	require.Len(t, data, 4+32)
	assert.Equal(t, "70a08231", hex.EncodeToString(data[:4]))
	assert.Equal(t, testFrom.Bytes(), data[4+12:])
}

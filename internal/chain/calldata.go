package chain

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Standard transfer selectors.
var (
	selERC20Transfer       = common.FromHex("0xa9059cbb") // transfer(address,uint256)
	selERC721SafeTransfer  = common.FromHex("0x42842e0e") // safeTransferFrom(address,address,uint256)
	selERC1155SafeTransfer = common.FromHex("0xf242432a") // safeTransferFrom(address,address,uint256,uint256,bytes)
	selBalanceOf           = common.FromHex("0x70a08231") // balanceOf(address)
)

func addrWord(a common.Address) []byte { return common.LeftPadBytes(a.Bytes(), 32) }

func uintWord(v *uint256.Int) []byte {
	w := v.Bytes32()
	return w[:]
}

// EncodeERC20Transfer builds transfer(to, amount) calldata.
func EncodeERC20Transfer(to common.Address, amount *uint256.Int) []byte {
	out := make([]byte, 0, 4+2*32)
	out = append(out, selERC20Transfer...)
	out = append(out, addrWord(to)...)
	out = append(out, uintWord(amount)...)
	return out
}

// EncodeERC721Transfer builds safeTransferFrom(from, to, tokenId) calldata.
func EncodeERC721Transfer(from, to common.Address, tokenID *uint256.Int) []byte {
	out := make([]byte, 0, 4+3*32)
	out = append(out, selERC721SafeTransfer...)
	out = append(out, addrWord(from)...)
	out = append(out, addrWord(to)...)
	out = append(out, uintWord(tokenID)...)
	return out
}

// EncodeERC1155Transfer builds safeTransferFrom(from, to, id, amount, "")
// calldata. The trailing bytes argument is dynamic: its head word holds the
// offset to an empty payload.
func EncodeERC1155Transfer(from, to common.Address, tokenID, amount *uint256.Int) []byte {
	out := make([]byte, 0, 4+6*32)
	out = append(out, selERC1155SafeTransfer...)
	out = append(out, addrWord(from)...)
	out = append(out, addrWord(to)...)
	out = append(out, uintWord(tokenID)...)
	out = append(out, uintWord(amount)...)
	out = append(out, uintWord(uint256.NewInt(5*32))...) // offset of bytes data
	out = append(out, uintWord(uint256.NewInt(0))...)    // empty bytes length
	return out
}

// EncodeBalanceOf builds balanceOf(owner) calldata.
func EncodeBalanceOf(owner common.Address) []byte {
	out := make([]byte, 0, 4+32)
	out = append(out, selBalanceOf...)
	out = append(out, addrWord(owner)...)
	return out
}

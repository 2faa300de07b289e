package field

import (
	"math/big"

	blsfr "github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	bnfr "github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/field/babybear"
	"github.com/consensys/gnark-crypto/field/goldilocks"

	"github.com/vocdoni/zkhash/field/pasta"
)

// babyBearModulus is 2^31 - 2^27 + 1.
const babyBearModulus uint64 = 2013265921

var (
	// BN254 is the scalar field of the BN254 curve.
	BN254 = New[bnfr.Element]("bn254", bnfr.Modulus())
	// BLS12381 is the scalar field of the BLS12-381 curve.
	BLS12381 = New[blsfr.Element]("bls12-381", blsfr.Modulus())
	// Goldilocks is the 64-bit field 2^64 - 2^32 + 1.
	Goldilocks = New[goldilocks.Element]("goldilocks", goldilocks.Modulus())
	// BabyBear is the 31-bit field 2^31 - 2^27 + 1.
	BabyBear = New[babybear.Element]("babybear", new(big.Int).SetUint64(babyBearModulus))
	// Pallas is the base field of the Pallas curve (scalar field of Vesta).
	Pallas = New[pasta.Pallas]("pallas", pasta.PallasModulus())
	// Vesta is the base field of the Vesta curve (scalar field of Pallas).
	Vesta = New[pasta.Vesta]("vesta", pasta.VestaModulus())
)

// Element types of the supported fields.
type (
	BN254Element      = bnfr.Element
	BLS12381Element   = blsfr.Element
	GoldilocksElement = goldilocks.Element
	BabyBearElement   = babybear.Element
	PallasElement     = pasta.Pallas
	VestaElement      = pasta.Vesta
)

// Names lists the supported fields in catalog order.
var Names = []string{"babybear", "goldilocks", "bn254", "bls12-381", "pallas", "vesta"}

package constant

// CoinDenominations lists accepted coin values, largest first.
var CoinDenominations = []int32{100, 50, 20, 10, 5}

const SmallestCoin int32 = 5

package main

import "github.com/wallet-guard/walletguard/cmd/walletguard/cmd"

func main() {
	cmd.Execute()
}

// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	productapi "github.com/retr0h/bazaar/internal/api/product"
	"github.com/retr0h/bazaar/internal/cli"
)

// clientProductCmd represents the clientProduct command.
var clientProductCmd = &cobra.Command{
	Use:   "product",
	Short: "Manage product listings",
}

// clientProductListCmd represents the clientProductList command.
var clientProductListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	Run: func(cmd *cobra.Command, _ []string) {
		resp, err := handler.ListProducts(cmd.Context())
		if err != nil {
			cli.HandleError(err, logger)
			return
		}

		if printJSON(resp) {
			return
		}

		cli.DisplayProducts(resp.Items)
	},
}

// clientProductCreateCmd represents the clientProductCreate command.
var clientProductCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a product",
	Long: `Create a product listing. Recorded in the audit trail as ADD_PRODUCT.
Requires product:write permission.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		name, _ := cmd.Flags().GetString("name")
		description, _ := cmd.Flags().GetString("description")
		price, _ := cmd.Flags().GetInt64("price-cents")
		category, _ := cmd.Flags().GetInt64("category-id")
		brand, _ := cmd.Flags().GetInt64("brand-id")

		p, err := handler.CreateProduct(cmd.Context(), productapi.Request{
			Name:        name,
			Description: description,
			PriceCents:  price,
			CategoryID:  category,
			BrandID:     brand,
		})
		if err != nil {
			cli.HandleError(err, logger)
			return
		}

		if printJSON(p) {
			return
		}

		fmt.Println()
		cli.PrintKV("ID", strconv.FormatInt(p.ID, 10), "Name", p.Name)
		cli.PrintKV("Price", cli.FormatCents(p.PriceCents))
	},
}

// clientProductDeleteCmd represents the clientProductDelete command.
var clientProductDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a product",
	Long: `Delete a product listing. Recorded in the audit trail as DELETE_PRODUCT.
Requires product:write permission.
`,
	Run: func(cmd *cobra.Command, _ []string) {
		id, _ := cmd.Flags().GetInt64("id")

		resp, err := handler.DeleteProduct(cmd.Context(), id)
		if err != nil {
			cli.HandleError(err, logger)
			return
		}

		if printJSON(resp) {
			return
		}

		fmt.Println()
		cli.PrintKV("ID", strconv.FormatInt(id, 10), "Deleted", strconv.FormatBool(resp.Deleted))
	},
}

func init() {
	clientCmd.AddCommand(clientProductCmd)
	clientProductCmd.AddCommand(clientProductListCmd)
	clientProductCmd.AddCommand(clientProductCreateCmd)
	clientProductCmd.AddCommand(clientProductDeleteCmd)

	clientProductCreateCmd.Flags().String("name", "", "Product name")
	clientProductCreateCmd.Flags().String("description", "", "Product description")
	clientProductCreateCmd.Flags().Int64("price-cents", 0, "Price in cents")
	clientProductCreateCmd.Flags().Int64("category-id", 0, "Category id")
	clientProductCreateCmd.Flags().Int64("brand-id", 0, "Brand id")
	_ = clientProductCreateCmd.MarkFlagRequired("name")
	_ = clientProductCreateCmd.MarkFlagRequired("category-id")
	_ = clientProductCreateCmd.MarkFlagRequired("brand-id")

	clientProductDeleteCmd.Flags().Int64("id", 0, "Product id")
	_ = clientProductDeleteCmd.MarkFlagRequired("id")
}

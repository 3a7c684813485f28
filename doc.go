// Package matgo turns chemical compositions into numeric descriptor vectors
// for materials-property machine learning.
//
// Matgo parses formula strings such as "Fe2O3", expands tabulated elemental
// properties over every atom of the composition, and reduces the expansions
// with the statistics that the Ward/Magpie descriptor set is built from.
//
// # Quick Start
//
// Local tables:
//
//	ctx := context.Background()
//	store := magpie.NewStore(magpie.NewDirSource("./data/magpie"))
//	eng := matgo.New(matgo.WithTableStore(store))
//
//	fv, _ := eng.Featurize(ctx, "Fe2O3")
//	fmt.Println(fv.Len(), fv.Labels()[:3], fv.Values()[:3])
//
// Cloud tables:
//
//	awsCfg, _ := config.LoadDefaultConfig(ctx)
//	src := s3source.NewSource(s3.NewFromConfig(awsCfg), "my-bucket", "magpie/")
//	eng := matgo.New(matgo.WithTableStore(magpie.NewStore(src)))
//
// # Descriptor Blocks
//
// Featurize assembles one flat vector per formula from four blocks:
//
//	// 1. STOICHIOMETRY: p-norms of the atomic fractions (p = 0, 2, 3, 5, 7, 10).
//	norm, _ := eng.StoichiometricPNorm(comp, 2)
//
//	// 2. ELEMENTAL PROPERTIES: min/max/range/mean/std/mode over the per-atom
//	//    expansion of every property in MagpieProperties.
//	props, _ := eng.ElementalProperties(ctx, comp)
//
//	// 3. VALENCE ORBITALS: fraction-weighted s/p/d/f electron shares.
//	valence, _ := eng.ValenceFractions(ctx, comp)
//
//	// 4. IONIC CHARACTER: pairwise electronegativity-based ionicity.
//	ionic, _ := eng.IonicCharacter(ctx, comp)
//
// Batches run concurrently with a bounded worker count:
//
//	vectors, _ := eng.FeaturizeBatch(ctx, []string{"NaCl", "Fe2O3", "LiCoO2"})
//
// # Property Tables
//
// Elemental property tables are plain text files, one value per line indexed
// by atomic number, with "Missing" marking undefined entries. Sources abstract
// where the files live (directory, memory, S3, MinIO); the Store parses and
// caches them. Tables compressed as .zst, .gz or .lz4 are decompressed
// transparently.
//
// Precheck tests coverage before featurizing, so a batch can skip
// compositions that would fail on a missing table entry:
//
//	ok, _ := eng.Precheck(ctx, comp)
//
// # Cohesive Energy
//
// CohesiveEnergy combines a per-formula formation energy from an external
// materials database with embedded elemental reference energies:
//
//	client := energy.NewRESTClient(os.Getenv("MP_API_KEY"))
//	eng := matgo.New(matgo.WithTableStore(store), matgo.WithEnergyClient(client))
//	rec, _ := eng.CohesiveEnergy(ctx, comp)
//
// # Key Features
//
//   - Formula parsing with nested groups and fractional amounts
//   - Per-atom property expansion with explicit undefined-value semantics
//   - Holder means, stoichiometric p-norms and six-stat summaries
//   - Pluggable table sources (directory, memory, S3, MinIO)
//   - Transparent zstd and lz4 table decompression
//   - Roaring-bitmap coverage prechecks
//   - Rate-limited materials database client for cohesive energies
package matgo
